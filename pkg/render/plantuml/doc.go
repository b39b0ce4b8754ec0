// Package plantuml serializes dependency graphs as PlantUML and renders them
// with the PlantUML command-line tool.
//
// # Serialization
//
// [Serialize] emits one directed edge per (package, dependency) pair
// between start and end markers:
//
//	@startuml
//	"app" --> "libbar"
//	"app" --> "libfoo"
//	"libbar" --> "libfoo"
//	@enduml
//
// Packages with an empty dependency set produce no line. Output is sorted,
// so the same graph always yields the same text.
//
// # Rendering
//
// A [Renderer] shells out to the plantuml executable (a native binary or a
// wrapper script around plantuml.jar):
//
//	plantuml <file.puml> -tpng -o <output dir>
//
// PlantUML names the image after the input file, so the .puml must share
// the image's base name. A non-zero exit becomes a RENDER_FAILED error
// whose cause is the tool's stderr, verbatim.
package plantuml
