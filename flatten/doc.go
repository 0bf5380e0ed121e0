// Package flatten linearizes nested structured data (objects, arrays and
// scalars) into a flat map from dot-joined path to string, e.g.
// {"tags":["a"]} becomes {"tags.0": "a"}. JSON and YAML inputs are decoded
// with goccy/go-json and goccy/go-yaml.
package flatten
