// Package maven provides the artifact, project and repository model used by repostage.
//
// # Overview
//
// A Maven repository is a directory tree where every artifact lives at a path derived
// from its coordinates (group, artifact, version, classifier, type). This package models
// those coordinates, the default repository layout, the project graph handed over by a
// build, and the two ways an artifact can be written into a repository: installed (with
// the local repository transform applied) or copied verbatim.
//
// # Core Concepts
//
// Coordinates identify an artifact. Their ID is the deduplication key used when staging,
// their VersionlessKey (group:artifact) is used to match dependencies against projects
// of the current build irrespective of version.
//
// A Repository couples a base directory with a Layout. Two repositories take part in a
// staging run: the source (the user's local repository) and the staging repository. They
// share id, layout and policies; only the base directory differs.
//
// A Project is one module of the build. Projects form a parent chain that always
// terminates; a parent whose descriptor file is not available marks the boundary of the
// current build.
//
// # Usage Example
//
//	factory := maven.NewFactory()
//	source := maven.NewRepository("local", "/home/me/.m2/repository")
//
//	pom := factory.CreateProjectArtifact("com.acme", "parent", "1.0")
//	path := source.FileOf(pom.Coordinates)
//	// path = "/home/me/.m2/repository/com/acme/parent/1.0/parent-1.0.pom"
package maven
