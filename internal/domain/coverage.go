package domain

import (
	m "stunt.dev/pkg/stunt/internal/model"
	pkg "stunt.dev/pkg/stunt/pkg"
)

// coverageFromPlans folds spooled package plans into one tally of how many
// references the engine can isolate.
func coverageFromPlans(plans pkg.Spool[m.PackagePlan]) (m.Coverage, error) {
	var cov m.Coverage

	err := plans.Range(func(_ uint64, plan m.PackagePlan) error {
		for _, fn := range plan.Functions() {
			for _, ref := range fn.Refs {
				switch ref.Verdict {
				case m.VerdictLanguageBuiltin, m.VerdictConstant, m.VerdictType:
					// Language surface is not a dependency to isolate.
					continue
				}

				cov.Total++

				switch ref.Verdict {
				case m.VerdictPatch, m.VerdictBuiltinSeam, m.VerdictErrorValue, m.VerdictReceiver:
					cov.Patchable++
				}
			}
		}

		return nil
	})
	if err != nil {
		return m.Coverage{}, err
	}

	return cov, nil
}
