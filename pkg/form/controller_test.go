package form_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kottos/pkg/form"
)

func TestController(t *testing.T) {
	defaults := map[string]string{"name": "", "color": "#000000"}
	rules := form.Rules{
		"name": form.Required("Rating name is required"),
	}

	t.Run("starts from defaults", func(t *testing.T) {
		c := form.New(defaults)
		gt.Value(t, c.Values()).Equal(defaults)
	})

	t.Run("empty required field fails with message on that field", func(t *testing.T) {
		c := form.New(defaults)
		gt.Bool(t, c.Validate(rules)).False()
		gt.Value(t, c.Error("name")).Equal("Rating name is required")
		gt.Value(t, c.Error("color")).Equal("")
	})

	t.Run("SetField clears the error of that field without re-validating", func(t *testing.T) {
		c := form.New(defaults)
		c.Validate(rules)
		c.SetField("name", "")

		gt.Value(t, c.Error("name")).Equal("")
		gt.Value(t, len(c.Errors())).Equal(0)

		gt.Bool(t, c.Validate(rules)).False()
		gt.Value(t, c.Error("name")).Equal("Rating name is required")
	})

	t.Run("Reset restores defaults and clears errors", func(t *testing.T) {
		c := form.New(defaults)
		c.SetField("name", "Robust")
		c.SetField("color", "#00ff00")
		c.Validate(form.Rules{"color": form.Required("x"), "extra": form.Required("Extra is required")})
		gt.Value(t, len(c.Errors())).Equal(1)

		c.Reset()
		gt.Value(t, c.Values()).Equal(defaults)
		gt.Value(t, len(c.Errors())).Equal(0)
	})

	t.Run("Initialize replaces defaults", func(t *testing.T) {
		c := form.New(defaults)
		c.Initialize(map[string]string{"name": "Effective"})
		c.SetField("name", "changed")
		c.Reset()
		gt.Value(t, c.Field("name")).Equal("Effective")
	})

	t.Run("Values returns a copy", func(t *testing.T) {
		c := form.New(defaults)
		v := c.Values()
		v["name"] = "mutated"
		gt.Value(t, c.Field("name")).Equal("")
	})

	t.Run("nil defaults", func(t *testing.T) {
		c := form.New(nil)
		c.SetField("name", "x")
		gt.Value(t, c.Field("name")).Equal("x")
	})
}
