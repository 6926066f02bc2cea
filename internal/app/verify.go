package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/llm"
)

// Check is the outcome of one setup check. Warnings do not fail verification.
type Check struct {
	Name    string
	Passed  bool
	Warning bool
	Detail  string
}

// Verify checks that every dataset loads and that credentials are configured.
func (a *App) Verify(ctx context.Context) []Check {
	var checks []Check

	for _, table := range domain.Tables {
		rows, err := a.Loader.LoadTable(ctx, table)
		if err != nil {
			checks = append(checks, Check{Name: "data: " + table, Detail: err.Error()})
			continue
		}
		checks = append(checks, Check{Name: "data: " + table, Passed: true, Detail: fmt.Sprintf("%d rows", rows)})
	}

	keyName := "GROQ_API_KEY"
	if strings.EqualFold(a.Config.LLM.Provider, llm.ProviderGemini) {
		keyName = "GEMINI_API_KEY"
	}
	if strings.TrimSpace(a.Config.LLM.APIKey) == "" {
		checks = append(checks, Check{Name: "llm key", Detail: keyName + " is not set"})
	} else {
		checks = append(checks, Check{Name: "llm key", Passed: true, Detail: keyName + " configured"})
	}

	if strings.TrimSpace(a.Config.Classifier.APIToken) == "" {
		checks = append(checks, Check{Name: "classifier token", Passed: true, Warning: true, Detail: "HF_API_TOKEN is not set; anonymous requests are heavily rate limited"})
	} else {
		checks = append(checks, Check{Name: "classifier token", Passed: true, Detail: "HF_API_TOKEN configured"})
	}

	return checks
}

// AllPassed reports whether every check passed.
func AllPassed(checks []Check) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}
