package templates

import "errors"

var ErrTemplateNotFound = errors.New("template not found")
