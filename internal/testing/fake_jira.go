package testing

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/imamik/jiraseed/internal/platform/jira"
)

// Call records one request made against FakeJira.
type Call struct {
	Method   string
	Path     string
	Query    string
	Payload  jira.Document
	Resource jira.Resource
}

// FakeProject is a project held by FakeJira.
type FakeProject struct {
	ID   int64
	Key  string
	Name string
	Lead string

	Components []string
	Versions   []string
	Issues     []jira.Document

	nextIssue int
}

// FakeJira is an in-memory implementation of jira.Gateway that understands the
// handful of REST resources the populator uses.
type FakeJira struct {
	mu sync.Mutex

	SystemAvatars []int64
	Users         map[string]jira.Document
	UserAvatars   map[string]int64
	Projects      map[string]*FakeProject
	Links         []jira.Document
	Calls         []Call

	readStatus map[string]int
	failures   map[string]error
	nextID     int64
}

// NewFakeJira creates an empty fake with three system avatars.
func NewFakeJira() *FakeJira {
	return &FakeJira{
		SystemAvatars: []int64{10122, 10123, 10124},
		Users:         make(map[string]jira.Document),
		UserAvatars:   make(map[string]int64),
		Projects:      make(map[string]*FakeProject),
		readStatus:    make(map[string]int),
		failures:      make(map[string]error),
		nextID:        10000,
	}
}

// WithUser pre-creates a user.
func (f *FakeJira) WithUser(username string) *FakeJira {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Users[username] = jira.Document{"name": username}
	return f
}

// WithProject pre-creates a project.
func (f *FakeJira) WithProject(key, name string) *FakeJira {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addProject(key, name, "admin")
	return f
}

// ReadStatus forces every read of path (e.g. "project/FEAT") to answer status.
func (f *FakeJira) ReadStatus(path string, status int) *FakeJira {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readStatus[path] = status
	return f
}

// FailOn makes the next calls of method on path (e.g. "POST", "issue") return err.
func (f *FakeJira) FailOn(method, path string, err error) *FakeJira {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = err
	return f
}

// CountCalls returns how many calls matched method and path.
func (f *FakeJira) CountCalls(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// CallsTo returns the calls that matched method and path, in order.
func (f *FakeJira) CallsTo(method, path string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var calls []Call
	for _, c := range f.Calls {
		if c.Method == method && c.Path == path {
			calls = append(calls, c)
		}
	}
	return calls
}

// IssueKeys returns the keys of the issues of project key, in creation order.
func (f *FakeJira) IssueKeys(key string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.Projects[key]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(p.Issues))
	for _, issue := range p.Issues {
		keys = append(keys, issue.String("key"))
	}
	return keys
}

// Read implements jira.Gateway.
func (f *FakeJira) Read(_ context.Context, r jira.Resource) (*jira.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.record(http.MethodGet, r, nil)
	if err := f.failures[http.MethodGet+" "+path]; err != nil {
		return nil, err
	}
	if status, ok := f.readStatus[path]; ok {
		return &jira.Response{Status: status, Body: fmt.Sprintf(`{"errorMessages":["forced status %d"]}`, status)}, nil
	}

	switch {
	case path == "myself":
		return found(jira.Document{"name": "admin", "active": true}), nil

	case path == "avatar/user/system":
		system := make([]any, 0, len(f.SystemAvatars))
		for _, id := range f.SystemAvatars {
			system = append(system, map[string]any{"id": strconv.FormatInt(id, 10), "isSystemAvatar": true})
		}
		return found(jira.Document{"system": system}), nil

	case path == "user":
		username := r.Query.Get("username")
		if u, ok := f.Users[username]; ok {
			return found(u), nil
		}
		return notFound(fmt.Sprintf("The user named '%s' does not exist", username)), nil

	case strings.HasPrefix(path, "project/"):
		key := strings.TrimPrefix(path, "project/")
		if p, ok := f.Projects[key]; ok {
			return found(jira.Document{"id": strconv.FormatInt(p.ID, 10), "key": p.Key, "name": p.Name}), nil
		}
		return notFound(fmt.Sprintf("No project could be found with key '%s'.", key)), nil
	}
	return notFound("unknown resource " + path), nil
}

// Create implements jira.Gateway.
func (f *FakeJira) Create(_ context.Context, r jira.Resource, doc jira.Document) (jira.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.record(http.MethodPost, r, doc)
	if err := f.failures[http.MethodPost+" "+path]; err != nil {
		return nil, err
	}

	switch path {
	case "user":
		name := doc.String("name")
		if _, ok := f.Users[name]; ok {
			return nil, badRequest(r, "A user with that username already exists.")
		}
		f.Users[name] = doc
		return jira.Document{"name": name, "key": name}, nil

	case "project":
		key := doc.String("key")
		if _, ok := f.Projects[key]; ok {
			return nil, badRequest(r, "A project with that project key already exists.")
		}
		p := f.addProject(key, doc.String("name"), doc.String("lead"))
		return jira.Document{"id": p.ID, "key": p.Key}, nil

	case "component", "version":
		p, ok := f.Projects[doc.String("project")]
		if !ok {
			return nil, badRequest(r, "The project is not valid.")
		}
		name := doc.String("name")
		if path == "component" {
			p.Components = append(p.Components, name)
		} else {
			p.Versions = append(p.Versions, name)
		}
		f.nextID++
		return jira.Document{"id": strconv.FormatInt(f.nextID, 10), "name": name}, nil

	case "issue":
		p, err := f.issueProject(r, doc)
		if err != nil {
			return nil, err
		}
		p.nextIssue++
		f.nextID++
		issue := jira.Document{
			"id":     strconv.FormatInt(f.nextID, 10),
			"key":    fmt.Sprintf("%s-%d", p.Key, p.nextIssue),
			"fields": doc["fields"],
		}
		p.Issues = append(p.Issues, issue)
		return jira.Document{"id": issue["id"], "key": issue["key"]}, nil

	case "issueLink":
		f.Links = append(f.Links, doc)
		return jira.Document{}, nil
	}
	return nil, &jira.RemoteError{Method: http.MethodPost, Resource: r.String(), Status: http.StatusNotFound, Body: "unknown resource"}
}

// Replace implements jira.Gateway.
func (f *FakeJira) Replace(_ context.Context, r jira.Resource, doc jira.Document) (jira.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.record(http.MethodPut, r, doc)
	if err := f.failures[http.MethodPut+" "+path]; err != nil {
		return nil, err
	}

	if path == "user/avatar" {
		username := r.Query.Get("username")
		if _, ok := f.Users[username]; !ok {
			return nil, &jira.RemoteError{Method: http.MethodPut, Resource: r.String(), Status: http.StatusNotFound, Body: "user does not exist"}
		}
		id, err := doc.Int64("id")
		if err != nil {
			return nil, badRequest(r, err.Error())
		}
		f.UserAvatars[username] = id
		return jira.Document{}, nil
	}
	return nil, &jira.RemoteError{Method: http.MethodPut, Resource: r.String(), Status: http.StatusNotFound, Body: "unknown resource"}
}

// Delete implements jira.Gateway.
func (f *FakeJira) Delete(_ context.Context, r jira.Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.record(http.MethodDelete, r, nil)
	if err := f.failures[http.MethodDelete+" "+path]; err != nil {
		return err
	}

	if key, ok := strings.CutPrefix(path, "project/"); ok {
		if _, exists := f.Projects[key]; !exists {
			return &jira.RemoteError{Method: http.MethodDelete, Resource: r.String(), Status: http.StatusNotFound, Body: "project does not exist"}
		}
		delete(f.Projects, key)
		return nil
	}
	return &jira.RemoteError{Method: http.MethodDelete, Resource: r.String(), Status: http.StatusNotFound, Body: "unknown resource"}
}

func (f *FakeJira) record(method string, r jira.Resource, doc jira.Document) string {
	path := strings.Join(r.Segments, "/")
	f.Calls = append(f.Calls, Call{
		Method:   method,
		Path:     path,
		Query:    r.Query.Encode(),
		Payload:  doc,
		Resource: r,
	})
	return path
}

func (f *FakeJira) addProject(key, name, lead string) *FakeProject {
	f.nextID++
	p := &FakeProject{ID: f.nextID, Key: key, Name: name, Lead: lead}
	f.Projects[key] = p
	return p
}

// issueProject finds the project an issue payload refers to. The project id
// must be numeric.
func (f *FakeJira) issueProject(r jira.Resource, doc jira.Document) (*FakeProject, error) {
	fields := asDocument(doc["fields"])
	project := asDocument(fields["project"])

	var id int64
	switch v := project["id"].(type) {
	case int64:
		id = v
	case int:
		id = int64(v)
	default:
		return nil, badRequest(r, fmt.Sprintf("project id must be numeric, got %T", v))
	}

	for _, p := range f.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, badRequest(r, fmt.Sprintf("project %d does not exist", id))
}

func asDocument(v any) jira.Document {
	switch d := v.(type) {
	case jira.Document:
		return d
	case map[string]any:
		return d
	}
	return jira.Document{}
}

func found(doc jira.Document) *jira.Response {
	return &jira.Response{Status: http.StatusOK, Document: doc}
}

func notFound(message string) *jira.Response {
	return &jira.Response{Status: http.StatusNotFound, Body: fmt.Sprintf(`{"errorMessages":[%q]}`, message)}
}

func badRequest(r jira.Resource, message string) error {
	return &jira.RemoteError{
		Method:   http.MethodPost,
		Resource: r.String(),
		Status:   http.StatusBadRequest,
		Body:     fmt.Sprintf(`{"errorMessages":[%q]}`, message),
	}
}
