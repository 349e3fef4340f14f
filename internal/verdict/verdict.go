// Package verdict reduces a diagnostic list to a single pass/warn/fail
// summary.
package verdict

import "github.com/syrin-labs/mcplint/internal/model"

// Synthesize partitions diagnostics into errors and warnings and reduces
// them to a Verdict. When strict is true, every warning is promoted to an
// error before the split, so a strict run can only ever produce "pass" or
// "fail".
func Synthesize(diagnostics []model.Diagnostic, strict bool) (verdict model.Verdict, errors, warnings []model.Diagnostic) {
	for _, d := range diagnostics {
		severity := d.Severity
		if strict && severity == model.SeverityWarning {
			severity = model.SeverityError
		}
		switch severity {
		case model.SeverityError:
			errors = append(errors, d)
		case model.SeverityWarning:
			warnings = append(warnings, d)
		}
	}

	switch {
	case len(errors) > 0:
		verdict = model.VerdictFail
	case len(warnings) > 0:
		verdict = model.VerdictPassWithWarnings
	default:
		verdict = model.VerdictPass
	}
	return verdict, errors, warnings
}
