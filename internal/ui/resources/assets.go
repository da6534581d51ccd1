// Package resources provides static asset handling for the web console.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// StylesheetPath is the URL path of the console stylesheet.
var StylesheetPath = StaticPath("console.css")
