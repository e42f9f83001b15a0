package memory

import (
	"fmt"
	"time"
)

// Seed templates for a fresh memory container. These give the agent a
// consistent starting shape; everything after the seed is the agent's to
// rewrite.

func objectiveTemplate(objective string, now time.Time) string {
	return fmt.Sprintf(`# Project Objective

## Main Goal
%s

## Success Criteria
- Objective is fully implemented
- All tests pass
- Code is documented
- Solution is deployed or deployable

## Created
%s
`, objective, now.Format(time.RFC3339))
}

func progressTemplate() string {
	return `# Progress Tracker

## Overall Progress: 0%

## Completed Tasks
- [ ] Understand objective
- [ ] Plan approach
- [ ] Implement solution
- [ ] Test solution
- [ ] Document solution

## Current Status
Starting analysis...
`
}

func workingOnTemplate() string {
	return `# Current Focus

(Nothing yet — run just started)
`
}

func architectureTemplate() string {
	return `# Architecture Decisions

## Technology Stack
(To be determined based on requirements)

## Key Components
(To be identified during implementation)

## Design Patterns
(To be discovered and documented)
`
}

func patternsTemplate() string {
	return `# Discovered Patterns

## Code Patterns
(Patterns found in the codebase will be documented here)

## Workflow Patterns
(Effective workflows will be noted here)

## Anti-Patterns to Avoid
(Problematic approaches will be listed here)
`
}

func decisionsTemplate() string {
	return `# Decision Log

## Format: [Date] Decision: Rationale

(Decisions will be logged here as they are made)
`
}
