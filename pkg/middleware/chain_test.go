package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/vango-dev/formkit/pkg/features/form"
)

type ctxKey string

type traceObserver struct {
	name string
	log  *[]string
}

func (o traceObserver) record(event string) { *o.log = append(*o.log, o.name+":"+event) }

func (o traceObserver) FieldRegistered(_, field string, _ int) { o.record("register " + field) }
func (o traceObserver) FieldUnregistered(_, field string)      { o.record("unregister " + field) }
func (o traceObserver) FieldValidated(_, field, _ string)      { o.record("validate " + field) }

func (o traceObserver) SubmitStarted(ctx context.Context, _ string) context.Context {
	o.record("start")
	if prev, ok := ctx.Value(ctxKey("seen")).(string); ok {
		o.record("saw " + prev)
	}
	return context.WithValue(ctx, ctxKey("seen"), o.name)
}

func (o traceObserver) SubmitFinished(context.Context, string, form.SubmitResult) {
	o.record("finish")
}

func TestChain_OrderAndContext(t *testing.T) {
	var log []string
	obs := Chain(traceObserver{"a", &log}, nil, traceObserver{"b", &log})

	c := form.New(form.WithObserver(obs))
	c.Register("x", nil)
	c.SetFieldTouched("x", true)
	c.Submit(context.Background(), nil)
	c.Unregister("x")

	want := []string{
		"a:register x", "b:register x",
		"a:validate x", "b:validate x",
		"a:start", "b:start", "b:saw a",
		"b:finish", "a:finish",
		"a:unregister x", "b:unregister x",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("got  %v\nwant %v", log, want)
	}
}

func TestChain_Single(t *testing.T) {
	var log []string
	o := traceObserver{"only", &log}
	if got := Chain(nil, o); got != form.Observer(o) {
		t.Errorf("expected the single observer back, got %T", got)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := form.New(form.WithName("login"), form.WithObserver(Logging(logger)))
	c.Register("username", []form.Rule{form.Required()})
	c.SetFieldTouched("username", true)
	c.Submit(context.Background(), nil)

	out := buf.String()
	for _, want := range []string{
		`msg="field invalid" form=login field=username`,
		`msg=submission form=login outcome=invalid fields=1 failed=1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, out)
		}
	}
}
