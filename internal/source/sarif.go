package source

import (
	"fmt"
	"strings"

	"github.com/nao1215/issuesreport/internal/model"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

// severityProperty is the result property that carries an explicit
// severity name (BLOCKER, CRITICAL, ...). It takes precedence over level.
const severityProperty = "severity"

// unknownRuleKey is used for results that carry no rule id.
const unknownRuleKey = "unknown"

// DecodeSARIF decodes a SARIF log. Results of every run are returned in
// document order; suppressed results are skipped. The files analyzed count
// is the number of artifacts listed by the runs. A run without artifacts
// counts the distinct files its results point at.
func DecodeSARIF(data []byte) (*Batch, error) {
	sarifLog, err := sarif.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	batch := &Batch{}
	for _, run := range sarifLog.Runs {
		if run == nil {
			continue
		}
		names := ruleNames(run)
		resultFiles := make(map[string]struct{})
		for _, result := range run.Results {
			if result == nil {
				continue
			}
			if path := resultPath(result); path != model.NoFilePath {
				resultFiles[path] = struct{}{}
			}
			if len(result.Suppressions) > 0 {
				continue
			}
			issue, err := sarifIssue(result, names)
			if err != nil {
				return nil, err
			}
			batch.Issues = append(batch.Issues, issue)
		}

		if len(run.Artifacts) > 0 {
			batch.FilesAnalyzed += len(run.Artifacts)
		} else {
			batch.FilesAnalyzed += len(resultFiles)
		}
	}

	return batch, nil
}

// ruleNames maps rule ids of the run's driver to display names.
func ruleNames(run *sarif.Run) map[string]string {
	names := make(map[string]string)
	if run.Tool.Driver == nil {
		return names
	}
	for _, rule := range run.Tool.Driver.Rules {
		if rule == nil {
			continue
		}
		names[rule.ID] = ruleDisplayName(rule)
	}
	return names
}

// ruleDisplayName prefers the rule name, then its short description.
func ruleDisplayName(rule *sarif.ReportingDescriptor) string {
	if rule.Name != nil && *rule.Name != "" {
		return *rule.Name
	}
	if rule.ShortDescription != nil && rule.ShortDescription.Text != nil && *rule.ShortDescription.Text != "" {
		return *rule.ShortDescription.Text
	}
	return rule.ID
}

// sarifIssue converts one result.
func sarifIssue(result *sarif.Result, names map[string]string) (model.Issue, error) {
	ruleKey := unknownRuleKey
	if result.RuleID != nil && *result.RuleID != "" {
		ruleKey = *result.RuleID
	}

	severity, err := sarifSeverity(result)
	if err != nil {
		return model.Issue{}, fmt.Errorf("%w: rule %s: %w", ErrInvalidDocument, ruleKey, err)
	}

	issue := model.Issue{
		Severity: severity,
		RuleKey:  ruleKey,
		RuleName: ruleKey,
	}
	if name, ok := names[ruleKey]; ok {
		issue.RuleName = name
	}
	if result.Message.Text != nil {
		issue.Message = *result.Message.Text
	}

	issue.FilePath = resultPath(result)
	if loc := firstPhysicalLocation(result); loc != nil {
		if loc.Region != nil && loc.Region.StartLine != nil && *loc.Region.StartLine > 0 {
			issue.StartLine = *loc.Region.StartLine
		}
	}

	return issue, nil
}

// resultPath returns the normalized artifact path of the result's first
// physical location, or model.NoFilePath.
func resultPath(result *sarif.Result) string {
	loc := firstPhysicalLocation(result)
	if loc == nil || loc.ArtifactLocation == nil || loc.ArtifactLocation.URI == nil {
		return model.NoFilePath
	}
	return model.NormalizePath(strings.TrimPrefix(*loc.ArtifactLocation.URI, "file://"))
}

// firstPhysicalLocation returns the physical location of the first
// location of the result, if any.
func firstPhysicalLocation(result *sarif.Result) *sarif.PhysicalLocation {
	for _, loc := range result.Locations {
		if loc != nil && loc.PhysicalLocation != nil {
			return loc.PhysicalLocation
		}
	}
	return nil
}

// sarifSeverity returns the severity of a result. An explicit "severity"
// property wins; otherwise the SARIF level is mapped:
// error -> CRITICAL, warning -> MAJOR, note -> MINOR, none -> INFO.
// A result without a level defaults to warning, so MAJOR.
func sarifSeverity(result *sarif.Result) (model.Severity, error) {
	if value, ok := result.Properties[severityProperty]; ok {
		name, isString := value.(string)
		if !isString {
			return 0, fmt.Errorf("%w: %v", model.ErrUnknownSeverity, value)
		}
		return model.ParseSeverity(name)
	}

	level := "warning"
	if result.Level != nil {
		level = strings.ToLower(*result.Level)
	}

	switch level {
	case "error":
		return model.SeverityCritical, nil
	case "warning":
		return model.SeverityMajor, nil
	case "note":
		return model.SeverityMinor, nil
	case "none":
		return model.SeverityInfo, nil
	default:
		return 0, fmt.Errorf("%w: level %q", model.ErrUnknownSeverity, level)
	}
}
