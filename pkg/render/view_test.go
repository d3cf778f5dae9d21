package render_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/testsupport"
	"github.com/goliatone/go-formflow/pkg/validation"
	"github.com/goliatone/go-formflow/pkg/widgets"
)

func TestBuildView_NavigationFlags(t *testing.T) {
	form := testsupport.MustSampleForm(t)

	cases := []struct {
		index              int
		prev, next, submit bool
	}{
		{0, false, true, false},
		{1, true, true, false},
		{2, true, false, true},
	}
	for _, tc := range cases {
		view, err := render.BuildView(form, render.RenderOptions{Index: tc.index})
		if err != nil {
			t.Fatalf("build view %d: %v", tc.index, err)
		}
		if view.ShowPrevious != tc.prev || view.ShowNext != tc.next || view.ShowSubmit != tc.submit {
			t.Fatalf("index %d: got prev=%v next=%v submit=%v", tc.index, view.ShowPrevious, view.ShowNext, view.ShowSubmit)
		}
		if view.Step != tc.index+1 || view.Count != 3 {
			t.Fatalf("index %d: unexpected step %d/%d", tc.index, view.Step, view.Count)
		}
	}

	if _, err := render.BuildView(form, render.RenderOptions{Index: 3}); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestBuildView_ValuesErrorsAndOptions(t *testing.T) {
	form := testsupport.MustSampleForm(t)
	values := model.NewValues(form)
	values["course"] = model.Scalar("ee")
	values["interests"] = model.Set("music", "coding")

	view, err := render.BuildView(form, render.RenderOptions{
		Index:  2,
		Values: values,
		Errors: validation.Errors{"about": "Maximum length is 500"},
	})
	if err != nil {
		t.Fatalf("build view: %v", err)
	}

	course := view.Fields[0]
	if course.Kind != widgets.KindSelect {
		t.Fatalf("expected select widget, got %s", course.Kind)
	}
	wantCourse := []render.OptionView{
		{Value: "", Label: "Select…"},
		{Value: "cs", Label: "Computer Science"},
		{Value: "ee", Label: "Electrical Engineering", Selected: true},
	}
	if diff := cmp.Diff(wantCourse, course.Options); diff != "" {
		t.Fatalf("course options mismatch (-want +got):\n%s", diff)
	}

	interests := view.Fields[1]
	var checked []string
	for _, opt := range interests.Options {
		if opt.Selected {
			checked = append(checked, opt.Value)
		}
	}
	if diff := cmp.Diff([]string{"music", "coding"}, checked); diff != "" {
		t.Fatalf("checked options mismatch (-want +got):\n%s", diff)
	}
	if interests.Options[0].TestID != "interest-sports" {
		t.Fatalf("option test id not carried, got %q", interests.Options[0].TestID)
	}

	about := view.Fields[2]
	if about.Kind != widgets.KindTextarea || about.Error != "Maximum length is 500" || about.MaxLength != 500 {
		t.Fatalf("unexpected textarea view: %+v", about)
	}
}

func TestBuildView_SanitizerAndTheme(t *testing.T) {
	form := model.FormStructure{
		FormTitle: "<b>Title</b>",
		Sections: []model.FormSection{{
			Title:  "Step",
			Fields: []model.FormField{{FieldID: "x", Type: "color", Label: "<i>X</i>"}},
		}},
	}
	strip := func(s string) string {
		return strings.NewReplacer("<b>", "", "</b>", "", "<i>", "", "</i>", "").Replace(s)
	}

	themeCfg, err := render.ResolveTheme(render.ThemeSource{Name: "acme", Tokens: map[string]string{"brand": "#123456"}})
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	view, err := render.BuildView(form, render.RenderOptions{Theme: themeCfg}, render.WithSanitizer(strip))
	if err != nil {
		t.Fatalf("build view: %v", err)
	}
	if view.FormTitle != "Title" || view.Fields[0].Label != "X" {
		t.Fatalf("sanitizer not applied: %q %q", view.FormTitle, view.Fields[0].Label)
	}
	if view.Fields[0].Kind != widgets.KindInput || view.Fields[0].InputType != "text" {
		t.Fatalf("unknown type should fall back to text input, got %+v", view.Fields[0])
	}
	if view.Theme["css"] != ":root {\n--brand: #123456;\n}" {
		t.Fatalf("unexpected theme css %q", view.Theme["css"])
	}
}

func TestCSSVarsStyleSkipsUnsafeValues(t *testing.T) {
	got := render.CSSVarsStyle(map[string]string{
		"--ok":     "1px",
		"--evil":   "red;}</style>",
		"noprefix": "x",
	})
	if got != ":root {\n--ok: 1px;\n}" {
		t.Fatalf("unexpected css %q", got)
	}
}
