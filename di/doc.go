// Package di is the keyed dependency container behind bootstrap.App.
//
// Scoped registrations are built at most once per Scope and closed with it.
// Startup actions use them for per-run resources:
//
//	c := di.NewContainer()
//	c.RegisterSingleton("db", db)
//	c.RegisterScoped("uow", func(r di.Resolver) (*UnitOfWork, error) {
//	    return OpenUnitOfWork(di.MustResolve[*sql.DB](r, "db"))
//	})
//
//	scope := c.NewScope()
//	defer scope.Close()
//	uow, err := di.Resolve[*UnitOfWork](scope, "uow")
package di
