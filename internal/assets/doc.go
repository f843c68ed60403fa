// Package assets provides the page template and stylesheets of generated
// HTML documents.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in template and styles (go:embed)
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// AssetResolver is what the converter uses: a custom directory can override
// a single stylesheet or the page template while every other asset keeps
// its built-in version.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
