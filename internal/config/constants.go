package config

// Connection defaults, matching a local Atlassian SDK instance.
const (
	DefaultURL      = "http://localhost:2990/jira"
	DefaultUsername = "admin"
	DefaultPassword = "admin"
)

// Property keys. The same names are accepted in a properties file and,
// upper-cased with "." and "-" replaced by "_", as environment variables
// (e.g. OB_SETUP_JIRA_URL).
const (
	KeyURL            = "ob.setup.jira.url"
	KeyUsername       = "ob.setup.jira.username"
	KeyPassword       = "ob.setup.jira.password"
	KeyDeleteProjects = "ob.setup.jira.delete-projects"
)

// Dataset defaults applied when a dataset file leaves a field empty.
const (
	DefaultIssueCount  = 30
	DefaultReporter    = "admin"
	DefaultProjectLead = "admin"
	DefaultEmailDomain = "example.com"
	DefaultLinkType    = "Blocks"
)
