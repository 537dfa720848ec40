package form

import (
	"context"
	"sync"

	ferrors "github.com/vango-dev/formkit/internal/errors"
)

// Instance is the imperative surface of a form, usable outside renders.
// *Controller and *Handle both implement it.
type Instance interface {
	GetFieldsValue() Values
	SetFieldsValue(partial Values)
	ValidateFields(ctx context.Context) (Values, error)
	ResetFields()
	GetFieldValue(name string) any
	SetFieldValue(name string, value any)
	GetFieldError(name string) []string
	SetFields(fields []FieldData)
}

var (
	_ Instance = (*Controller)(nil)
	_ Instance = (*Handle)(nil)
)

// Handle is an Instance that can be created before its controller and
// bound later with WithInstance.
type Handle struct {
	mu sync.RWMutex
	c  *Controller
}

// NewInstance creates an unbound handle.
func NewInstance() *Handle {
	return &Handle{}
}

// Bound reports whether the handle has a controller.
func (h *Handle) Bound() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.c != nil
}

func (h *Handle) bind(c *Controller) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.c != nil && h.c != c {
		panic(ferrors.New("F002").WithSuggestion("create one form.NewInstance() per form"))
	}
	h.c = c
}

func (h *Handle) controller() *Controller {
	h.mu.RLock()
	c := h.c
	h.mu.RUnlock()
	if c == nil {
		panic(ferrors.New("F003").WithExample("h := form.NewInstance()\nctrl := form.New(form.WithInstance(h))"))
	}
	return c
}

func (h *Handle) GetFieldsValue() Values { return h.controller().GetFieldsValue() }

func (h *Handle) SetFieldsValue(partial Values) { h.controller().SetFieldsValue(partial) }

func (h *Handle) ValidateFields(ctx context.Context) (Values, error) {
	return h.controller().ValidateFields(ctx)
}

func (h *Handle) ResetFields() { h.controller().ResetFields() }

func (h *Handle) GetFieldValue(name string) any { return h.controller().GetFieldValue(name) }

func (h *Handle) SetFieldValue(name string, value any) { h.controller().SetFieldValue(name, value) }

func (h *Handle) GetFieldError(name string) []string { return h.controller().GetFieldError(name) }

func (h *Handle) SetFields(fields []FieldData) { h.controller().SetFields(fields) }
