/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// keyField holds the document key inside CLI documents.
const keyField = "id"

// document is an untyped entity. Its collection is always supplied with
// docstore.WithCollectionName.
type document map[string]any

func (d document) CollectionName() string { return "" }

func (d document) Key() string {
	switch v := d[keyField].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func readDocument(r io.Reader) (document, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to read JSON document from stdin: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document must be a JSON object")
	}
	return doc, nil
}

func writeDocuments(w io.Writer, format string, docs ...document) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		for _, doc := range docs {
			if err := enc.Encode(doc); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		for _, doc := range docs {
			if err := enc.Encode(map[string]any(doc)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
