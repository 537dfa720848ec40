package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/formkit/pkg/vango"
)

// Controller owns the state of one form.
//
// State lives in signals, so a render that reads it through Values,
// Errors, Touched or FieldError re-renders when it changes. Writes never
// mutate a published map; every change publishes a fresh copy.
type Controller struct {
	name     string
	registry *Registry
	logger   *slog.Logger
	observer Observer
	ctx      context.Context

	onValuesChange func(changed, all Values)
	onFinish       func(ctx context.Context, values Values) error
	onFinishFailed func(ctx context.Context, errs Errors)

	values  *vango.Signal[Values]
	errors  *vango.Signal[Errors]
	touched *vango.Signal[Touched]
	state   *vango.Signal[SubmitState]

	mu       sync.Mutex
	initial  Values
	retired  map[string]bool
	handle   *Handle
	items    map[string]*Binding
	attached map[*vango.Owner]bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithName names the form in logs and metrics. Defaults to "form".
func WithName(name string) Option {
	return func(c *Controller) {
		c.name = name
	}
}

// WithInitialValues seeds the values and the reset baseline.
func WithInitialValues(values Values) Option {
	return func(c *Controller) {
		c.initial = values.Clone()
	}
}

// WithOnValuesChange registers a callback for every value write.
// changed holds only the written names.
func WithOnValuesChange(fn func(changed, all Values)) Option {
	return func(c *Controller) {
		c.onValuesChange = fn
	}
}

// WithOnFinish registers the callback for a submission that validates.
func WithOnFinish(fn func(ctx context.Context, values Values) error) Option {
	return func(c *Controller) {
		c.onFinish = fn
	}
}

// WithOnFinishFailed registers the callback for a submission that fails
// validation.
func WithOnFinishFailed(fn func(ctx context.Context, errs Errors)) Option {
	return func(c *Controller) {
		c.onFinishFailed = fn
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithContext sets the context used by HandleSubmit. Defaults to
// context.Background().
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// WithInstance binds h to the new controller.
// It panics with F002 when h is already bound to another controller.
func WithInstance(h *Handle) Option {
	return func(c *Controller) {
		h.bind(c)
		c.handle = h
	}
}

// New creates a controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		name:     "form",
		registry: NewRegistry(),
		logger:   slog.Default(),
		observer: NopObserver{},
		ctx:      context.Background(),
		initial:  Values{},
		retired:  make(map[string]bool),
		items:    make(map[string]*Binding),
		attached: make(map[*vango.Owner]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.observer == nil {
		c.observer = NopObserver{}
	}

	c.values = vango.NewSignal(c.initial.Clone())
	c.errors = vango.NewSignal(Errors{})
	c.touched = vango.NewSignal(Touched{})
	c.state = vango.NewSignal(SubmitIdle)
	return c
}

// Name returns the form name.
func (c *Controller) Name() string { return c.name }

// Registry returns the field registry.
func (c *Controller) Registry() *Registry { return c.registry }

// Instance returns the imperative handle for this controller.
func (c *Controller) Instance() *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		c.handle = NewInstance()
		c.handle.bind(c)
	}
	return c.handle
}

// Register mounts name with rules, replacing any previous rules.
// It panics with F004 when a rule is invalid.
func (c *Controller) Register(name string, rules []Rule) {
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			panic(err)
		}
	}

	c.registry.Register(name, rules)
	c.mu.Lock()
	delete(c.retired, name)
	c.mu.Unlock()

	c.logger.Debug("field registered", "form", c.name, "field", name, "rules", len(rules))
	c.observer.FieldRegistered(c.name, name, len(rules))
}

// Unregister unmounts name and purges its value, error and touched
// entries in one batch. The entries are purged even when name was never
// registered, e.g. after SetFieldValue on an unknown name.
func (c *Controller) Unregister(name string) {
	registered := c.registry.Unregister(name)
	c.mu.Lock()
	c.retired[name] = true
	c.mu.Unlock()

	vango.Batch(func() {
		c.values.Update(func(cur Values) Values {
			if _, ok := cur[name]; !ok {
				return cur
			}
			next := cur.Clone()
			delete(next, name)
			return next
		})
		c.errors.Update(func(cur Errors) Errors {
			if _, ok := cur[name]; !ok {
				return cur
			}
			next := cur.Clone()
			delete(next, name)
			return next
		})
		c.touched.Update(func(cur Touched) Touched {
			if _, ok := cur[name]; !ok {
				return cur
			}
			next := cur.Clone()
			delete(next, name)
			return next
		})
	})

	if !registered {
		return
	}
	c.logger.Debug("field unregistered", "form", c.name, "field", name)
	c.observer.FieldUnregistered(c.name, name)
}

// SetFieldValue writes one value. A touched field is re-validated.
func (c *Controller) SetFieldValue(name string, value any) {
	var all Values
	c.values.Update(func(cur Values) Values {
		next := cur.Clone()
		next[name] = value
		all = next
		return next
	})

	if c.onValuesChange != nil {
		c.onValuesChange(Values{name: value}, all.Clone())
	}

	if c.touched.Peek()[name] {
		c.revalidate(name)
	}
}

// SetFieldTouched marks or clears the touched flag. Marking a field
// touched always re-validates it.
func (c *Controller) SetFieldTouched(name string, touched bool) {
	c.touched.Update(func(cur Touched) Touched {
		next := cur.Clone()
		if touched {
			next[name] = true
		} else {
			delete(next, name)
		}
		return next
	})

	if touched {
		c.revalidate(name)
	}
}

// ValidateField evaluates the rules registered for name against the
// current values without writing state. Unregistered names pass.
func (c *Controller) ValidateField(name string) (string, bool) {
	rules, ok := c.registry.Rules(name)
	if !ok {
		return "", true
	}
	values := c.values.Peek()
	return Evaluate(values[name], values, rules)
}

func (c *Controller) revalidate(name string) {
	msg, _ := c.ValidateField(name)
	c.setError(name, msg)
	c.observer.FieldValidated(c.name, name, msg)
}

// setError stores msg for name, or clears the entry when msg is empty.
func (c *Controller) setError(name, msg string) {
	c.errors.Update(func(cur Errors) Errors {
		if old, ok := cur[name]; (ok && old == msg) || (!ok && msg == "") {
			return cur
		}
		next := cur.Clone()
		if msg == "" {
			delete(next, name)
		} else {
			next[name] = msg
		}
		return next
	})
}

// ValidateFields validates every registered field against one snapshot
// of the values, replaces the errors with exactly the failures and marks
// every registered field touched.
//
// On success it returns a copy of the values. On failure it returns a
// *ValidationError carrying all failures.
func (c *Controller) ValidateFields(ctx context.Context) (Values, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot := c.values.Peek().Clone()
	names := c.registry.Names()
	failed := Errors{}
	for _, name := range names {
		rules, ok := c.registry.Rules(name)
		if !ok {
			continue
		}
		if msg, ok := Evaluate(snapshot[name], snapshot, rules); !ok {
			failed[name] = msg
		}
	}

	vango.Batch(func() {
		c.errors.Set(failed.Clone())
		c.touched.Update(func(cur Touched) Touched {
			next := cur.Clone()
			for _, name := range names {
				next[name] = true
			}
			return next
		})
	})

	if len(failed) > 0 {
		return nil, &ValidationError{Errors: failed}
	}
	return snapshot, nil
}

// GetFieldsValue returns a copy of all values.
func (c *Controller) GetFieldsValue() Values {
	return c.values.Peek().Clone()
}

// SetFieldsValue merges partial into the values without validating.
func (c *Controller) SetFieldsValue(partial Values) {
	var all Values
	c.values.Update(func(cur Values) Values {
		next := cur.Clone()
		for k, v := range partial {
			next[k] = v
		}
		all = next
		return next
	})

	if c.onValuesChange != nil {
		c.onValuesChange(partial.Clone(), all.Clone())
	}
}

// GetFieldValue returns the value of name, or nil.
func (c *Controller) GetFieldValue(name string) any {
	return c.values.Peek()[name]
}

// GetFieldError returns the error of name as a slice of zero or one
// messages, regardless of the touched flag.
func (c *Controller) GetFieldError(name string) []string {
	if msg := c.errors.Peek()[name]; msg != "" {
		return []string{msg}
	}
	return []string{}
}

// SetFields writes values and errors directly, without evaluating rules.
func (c *Controller) SetFields(fields []FieldData) {
	vango.Batch(func() {
		c.values.Update(func(cur Values) Values {
			next := cur.Clone()
			for _, f := range fields {
				if f.Value != nil {
					next[f.Name] = f.Value
				}
			}
			return next
		})
		c.errors.Update(func(cur Errors) Errors {
			next := cur.Clone()
			for _, f := range fields {
				if f.Errors == nil {
					continue
				}
				if len(f.Errors) > 0 && f.Errors[0] != "" {
					next[f.Name] = f.Errors[0]
				} else {
					delete(next, f.Name)
				}
			}
			return next
		})
	})
}

// ResetFields restores the initial values and clears errors and touched
// flags. Registered rules are kept.
//
// Values are not always exactly the seeded initial values: the initial
// value of a field that has been unregistered stays dropped until the
// field is registered again, so a conditional field that is no longer
// rendered does not reappear in the values after a reset.
func (c *Controller) ResetFields() {
	c.mu.Lock()
	values := make(Values, len(c.initial))
	for k, v := range c.initial {
		if !c.retired[k] {
			values[k] = v
		}
	}
	c.mu.Unlock()

	vango.Batch(func() {
		c.values.Set(values)
		c.errors.Set(Errors{})
		c.touched.Set(Touched{})
	})
	c.logger.Debug("form reset", "form", c.name)
}

// Values returns all values and tracks the read.
func (c *Controller) Values() Values {
	return c.values.Get()
}

// Value returns the value of name and tracks the read.
func (c *Controller) Value(name string) any {
	return c.values.Get()[name]
}

// Errors returns every error, touched or not, and tracks the read.
func (c *Controller) Errors() Errors {
	return c.errors.Get()
}

// Touched returns the touched flags and tracks the read.
func (c *Controller) Touched() Touched {
	return c.touched.Get()
}

// IsTouched reports whether name is touched and tracks the read.
func (c *Controller) IsTouched(name string) bool {
	return c.touched.Get()[name]
}

// FieldError returns the error of name when the field is touched.
func (c *Controller) FieldError(name string) string {
	if !c.touched.Get()[name] {
		return ""
	}
	return c.errors.Get()[name]
}

// IsValid reports whether no field currently has an error.
func (c *Controller) IsValid() bool {
	return len(c.errors.Get()) == 0
}
