// Package verify runs every compatibility rule against a build and folds the
// results into a report.
package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/review"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/rules"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// ErrNilBuild is returned when Verify is called without a build.
var ErrNilBuild = errors.New("verify: nil build")

// Verifier evaluates builds under one profile. It holds no mutable state and
// may be shared between goroutines.
type Verifier struct {
	profile *profile.Profile
	version string
	rules   []rules.Rule
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithProfile selects the severity policy. A nil profile is ignored.
func WithProfile(p *profile.Profile) Option {
	return func(v *Verifier) {
		if p != nil {
			v.profile = p
		}
	}
}

// WithVersion sets the version stamped into reports.
func WithVersion(version string) Option {
	return func(v *Verifier) { v.version = version }
}

// New returns a Verifier using the default profile unless overridden.
func New(opts ...Option) *Verifier {
	def, _ := profile.Get("default")
	v := &Verifier{
		profile: def,
		version: "dev",
		rules:   rules.All(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Profile returns the profile the Verifier applies.
func (v *Verifier) Profile() *profile.Profile { return v.profile }

// Verify evaluates b and returns its report. A build missing a CPU or
// motherboard yields a report carrying a structural error and no categories;
// only a nil build is an error.
func (v *Verifier) Verify(b *build.Build) (*schema.Report, error) {
	if b == nil {
		return nil, ErrNilBuild
	}

	report := &schema.Report{
		Tool:       schema.Tool,
		Version:    v.version,
		Build:      b.Name,
		Profile:    v.profile.Name,
		Categories: []schema.CategoryResult{},
	}

	if missing := b.Missing(); len(missing) > 0 {
		report.Compatible = false
		report.Error = &schema.BuildError{
			Code:    schema.CodeBuildIncomplete,
			Message: fmt.Sprintf("build is missing %s", strings.Join(missing, " and ")),
			Missing: missing,
		}
		return report, nil
	}

	for _, r := range v.rules {
		report.Categories = append(report.Categories, v.evaluate(r, b))
	}
	report.Compatible = review.Compatible(report.Categories)
	report.Summary = review.Summarize(report.Categories)
	return report, nil
}

func (v *Verifier) evaluate(r rules.Rule, b *build.Build) schema.CategoryResult {
	result := schema.CategoryResult{Name: r.Category, Violations: []schema.Violation{}}
	if !r.Applicable(b) {
		result.Status = schema.StatusSkip
		return result
	}
	if vs := r.Evaluate(b, v.profile); len(vs) > 0 {
		result.Violations = vs
	}
	result.Status = review.Status(result.Violations)
	return result
}

// Verify evaluates b with the default profile.
func Verify(b *build.Build) (*schema.Report, error) {
	return New().Verify(b)
}
