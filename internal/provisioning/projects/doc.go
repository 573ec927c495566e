// Package projects provisions Jira projects and their children.
//
// Each project runs as three phases: the project itself is reconciled under
// the run's policy, its numeric id is resolved, and its components, versions
// and label pool are created. The last two only do work when the project was
// created or recreated in this run.
package projects
