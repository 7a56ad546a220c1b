package vtest

import (
	"context"
	"testing"
	"time"

	"github.com/vango-go/vtl/pkg/query"
	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/vdom"
)

func TestDefaultHarness(t *testing.T) {
	Setup(t)

	r, err := Render(vdom.Mount(counter()))
	if err != nil {
		t.Fatal(err)
	}
	button, err := Screen().GetByRole("button")
	if err != nil {
		t.Fatal(err)
	}
	if err := Click(button); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetByText("count: 1"); err != nil {
		t.Error(err)
	}

	// Events fired through the query package flush via the installed
	// wrapper.
	query.Click(Default().Document(), button)
	if _, err := Within(r.Container).GetByText("count: 2"); err != nil {
		t.Error(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := WaitFor(ctx, func() error {
		_, err := Screen().GetByText("count: 2")
		return err
	}); err != nil {
		t.Error(err)
	}
}

func TestDefaultRenderHook(t *testing.T) {
	Setup(t)
	h, err := RenderHook(func(step int) int {
		n, _ := reactive.UseState(step)
		return n
	}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Result.Current(); got != 1 {
		t.Errorf("Result = %d", got)
	}
}

func TestConfigure(t *testing.T) {
	prev := GetConfig()
	t.Cleanup(func() { Configure(func(c *Config) { *c = prev }) })

	Configure(func(c *Config) {
		c.StrictMode = true
		c.TestIDAttribute = "data-qa"
	})
	got := GetConfig()
	if !got.StrictMode || got.TestIDAttribute != "data-qa" {
		t.Errorf("config = %+v", got)
	}
	if query.GetConfig().TestIDAttribute != "data-qa" {
		t.Error("query config not updated")
	}

	Setup(t)
	r, err := Render(vdom.Div(vdom.AttrKV("data-qa", "box")))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetByTestID("box"); err != nil {
		t.Error(err)
	}
}
