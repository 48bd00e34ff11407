// Package schemas embeds the JSON Schemas for signup documents.
package schemas

import _ "embed"

// ConfigSchema validates signup.yaml.
//
//go:embed config.schema.json
var ConfigSchema []byte

// AnswersSchema validates answers files fed to the headless driver.
//
//go:embed answers.schema.json
var AnswersSchema []byte
