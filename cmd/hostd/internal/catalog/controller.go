package catalog

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/hostkit/errors"
	"github.com/kbukum/hostkit/server"
	"github.com/kbukum/hostkit/validation"
)

const maxNameLength = 64

// FoosController serves the foos API.
type FoosController struct {
	store *Store
}

// NewFoosController creates a controller over store.
func NewFoosController(store *Store) *FoosController {
	return &FoosController{store: store}
}

// Register mounts the controller's routes on r.
func (fc *FoosController) Register(r gin.IRouter) {
	r.GET("/foos", fc.Index)
	r.GET("/foos/new", fc.New)
	r.GET("/foos/:id", fc.Show)
	r.POST("/foos", fc.Create)
}

// Index lists every foo.
func (fc *FoosController) Index(c *gin.Context) {
	foos := fc.store.List()
	server.RespondList(c, foos, len(foos))
}

// New returns an empty foo for clients building a create form.
func (fc *FoosController) New(c *gin.Context) {
	server.RespondOK(c, createFooRequest{})
}

// Show returns one foo.
func (fc *FoosController) Show(c *gin.Context) {
	id, err := validation.ValidateUUID("id", c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	foo, err := fc.store.Get(id.String())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, foo)
}

type createFooRequest struct {
	Name string `json:"name"`
}

// Create adds a foo.
func (fc *FoosController) Create(c *gin.Context) {
	var req createFooRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be a JSON object").WithCause(err))
		return
	}

	if appErr := validation.New().
		Required("name", req.Name).
		MaxLength("name", req.Name, maxNameLength).
		Validate(); appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}

	server.RespondCreated(c, fc.store.Create(req.Name))
}
