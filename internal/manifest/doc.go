// Package manifest decodes the list of input files for a run.
//
// A manifest is a JSON array of objects with a file_path (where the file is
// on disk) and a file_name (its display name, from which the table name is
// derived). Manifests may carry // and /* */ comments and trailing commas;
// they are stripped with github.com/tidwall/jsonc before decoding.
package manifest
