package utils

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/picogrid/vegca-inputs/pkg/params"
	"github.com/picogrid/vegca-inputs/pkg/schema"
)

// PromptForValues asks for a new value for every entry of t, offering the current
// value as the default. It returns only the values that changed. s may be nil.
func PromptForValues(t *params.Table, s *schema.Schema, opts ...survey.AskOpt) (map[string]string, error) {
	changed := make(map[string]string)

	for _, e := range t.Entries() {
		var decl *schema.Parameter
		if s != nil {
			if p, ok := s.Lookup(e.Name); ok {
				decl = &p
			}
		}

		value, err := promptForEntry(e, decl, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", e.Name, err)
		}
		if value != e.Value.Raw() {
			changed[e.Name] = value
		}
	}

	return changed, nil
}

func promptForEntry(e params.Entry, decl *schema.Parameter, opts ...survey.AskOpt) (string, error) {
	message := promptMessage(e, decl)

	// If options are provided, use a select prompt
	if decl != nil && len(decl.Options) > 0 {
		prompt := &survey.Select{
			Message: message,
			Options: decl.Options,
		}
		if containsOption(decl.Options, e.Value.Raw()) {
			prompt.Default = e.Value.Raw()
		}

		var result string
		if err := survey.AskOne(prompt, &result, opts...); err != nil {
			return "", err
		}
		return result, nil
	}

	prompt := &survey.Input{
		Message: message,
		Default: e.Value.Raw(),
	}

	var result string
	validator := survey.ComposeValidators(survey.Required, ValueValidator(e.Value.Kind(), decl))
	if err := survey.AskOne(prompt, &result, append(opts, survey.WithValidator(validator))...); err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

func promptMessage(e params.Entry, decl *schema.Parameter) string {
	desc := e.Description
	if desc == "" && decl != nil {
		desc = decl.Description
	}
	msg := e.Name
	if desc != "" {
		msg += " (" + desc + ")"
	}
	if decl != nil && decl.Unit != "" {
		msg += " [" + decl.Unit + "]"
	}
	return msg + ":"
}

// ValueValidator returns a survey validator that keeps an edited value writable and
// of the same kind as the current one. When decl is set its range and options are
// enforced too.
func ValueValidator(kind params.Kind, decl *schema.Parameter) survey.Validator {
	return func(ans interface{}) error {
		str, ok := ans.(string)
		if !ok {
			return fmt.Errorf("expected text input")
		}
		str = strings.TrimSpace(str)

		if strings.Contains(str, ":") || strings.HasPrefix(str, "#") {
			return fmt.Errorf("values cannot contain ':' or start with '#'")
		}

		v, err := params.Infer(str)
		if err != nil {
			return err
		}
		if kind == params.KindFloat && v.Kind() == params.KindInt {
			return fmt.Errorf("%s is an integer; write it with a decimal point (e.g. %s.)", str, str)
		}
		if v.Kind() != kind {
			return fmt.Errorf("expected %s, got %s", kind, v.Kind())
		}

		if decl == nil {
			return nil
		}
		return decl.CheckValue(v)
	}
}

func containsOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
