// Package users provisions Jira users.
//
// The system avatar pool is loaded first. Each configured user is created when
// absent and given the next avatar from the pool; existing users are left
// untouched and do not consume an avatar.
package users
