// Package testutil holds test doubles shared by hostkit packages: a
// recorder of startup action calls, an in-memory log sink and a helper that
// starts a component for the duration of a test.
//
//	func TestRunner(t *testing.T) {
//	    rec := &testutil.Recorder{}
//	    r := lifecycle.NewRunner(nil, lifecycle.WithActions(rec.Action("a", nil)))
//	    testutil.Start(t, r)
//	    // rec.Calls() == []string{"a"}
//	}
package testutil
