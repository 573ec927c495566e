// Package issues creates synthetic issues and links them across projects.
//
// The generation phase turns generator drafts into issues of one project and
// publishes their keys in the state lookup table. The link phase pairs a
// project's issues with those of the anchor project by index.
package issues
