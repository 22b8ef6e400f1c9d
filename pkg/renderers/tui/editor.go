package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goliatone/go-arrayfield/pkg/dataurl"
	"github.com/goliatone/go-arrayfield/pkg/field"
	"github.com/goliatone/go-arrayfield/pkg/schema"
)

const (
	actionAdd    = "add item"
	actionEdit   = "edit item"
	actionRemove = "remove item"
	actionDone   = "done"
)

// Editor runs an interactive add/remove/edit session against a controller.
// Every prompt answer flows through the controller's event methods, so the
// OnChange capability observes the same value stream a form would produce.
type Editor struct {
	driver PromptDriver
}

// NewEditor wraps a prompt driver. A nil driver gets the survey default.
func NewEditor(driver PromptDriver) *Editor {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Editor{driver: driver}
}

// Run edits the controller until the user picks done. The final value is
// returned; the controller has already reported every intermediate change.
func (e *Editor) Run(ctx context.Context, ctrl *field.Controller) ([]any, error) {
	switch ctrl.Mode() {
	case field.ModeMultiSelect:
		if err := e.editMultiSelect(ctx, ctrl); err != nil {
			return nil, err
		}
		return ctrl.Value(), nil
	case field.ModeMultiFile:
		if err := e.editMultiFile(ctx, ctrl); err != nil {
			return nil, err
		}
		return ctrl.Value(), nil
	default:
		if err := e.editItems(ctx, ctrl); err != nil {
			return nil, err
		}
		return ctrl.Value(), nil
	}
}

func (e *Editor) editMultiSelect(ctx context.Context, ctrl *field.Controller) error {
	item, ok := ctrl.Schema().ItemSchema()
	if !ok {
		return nil
	}
	options := make([]string, 0, len(item.Enum))
	for _, candidate := range item.Enum {
		options = append(options, fmt.Sprintf("%v", candidate))
	}

	current := make(map[string]struct{})
	for _, entry := range ctrl.Value() {
		current[fmt.Sprintf("%v", entry)] = struct{}{}
	}
	defaults := make([]int, 0, len(current))
	for idx, option := range options {
		if _, ok := current[option]; ok {
			defaults = append(defaults, idx)
		}
	}

	picked, err := e.driver.MultiSelect(ctx, SelectConfig{
		Message:  promptTitle(ctrl, "Select values"),
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}
	selected := make([]string, 0, len(picked))
	for _, idx := range picked {
		selected = append(selected, options[idx])
	}
	ctrl.SelectEnum(selected)
	return nil
}

func (e *Editor) editMultiFile(ctx context.Context, ctrl *field.Controller) error {
	var files []dataurl.File
	for {
		path, err := e.driver.Input(ctx, InputConfig{
			Message: promptTitle(ctrl, "File path"),
			Help:    "Empty input finishes file selection.",
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(path) == "" {
			break
		}
		files = append(files, pathFile{path: path})
	}
	if len(files) == 0 {
		return nil
	}
	return ctrl.AttachFiles(ctx, files)
}

func (e *Editor) editItems(ctx context.Context, ctrl *field.Controller) error {
	for {
		if err := e.printValue(ctx, ctrl); err != nil {
			return err
		}
		choice, err := e.driver.Select(ctx, SelectConfig{
			Message: promptTitle(ctrl, "Action"),
			Options: e.actions(ctrl),
		})
		if err != nil {
			return err
		}
		actions := e.actions(ctrl)
		if choice < 0 || choice >= len(actions) {
			continue
		}

		switch actions[choice] {
		case actionAdd:
			ctrl.Add()
			if err := e.editAt(ctx, ctrl, ctrl.Len()-1); err != nil {
				return err
			}
		case actionEdit:
			index, err := e.pickIndex(ctx, ctrl, "Edit which item?")
			if err != nil {
				return err
			}
			if index < 0 {
				continue
			}
			if err := e.editAt(ctx, ctrl, index); err != nil {
				return err
			}
		case actionRemove:
			index, err := e.pickIndex(ctx, ctrl, "Remove which item?")
			if err != nil {
				return err
			}
			if index < 0 {
				continue
			}
			if err := ctrl.Remove(index); err != nil {
				return err
			}
		case actionDone:
			return nil
		}
	}
}

func (e *Editor) actions(ctrl *field.Controller) []string {
	actions := make([]string, 0, 4)
	if ctrl.Mode() == field.ModeList || (ctrl.Mode() == field.ModeTuple && ctrl.Schema().AdditionalItems != nil) {
		actions = append(actions, actionAdd)
	}
	if ctrl.Len() > 0 {
		actions = append(actions, actionEdit, actionRemove)
	}
	return append(actions, actionDone)
}

func (e *Editor) pickIndex(ctx context.Context, ctrl *field.Controller, message string) (int, error) {
	if ctrl.Len() == 0 {
		return -1, nil
	}
	options := make([]string, ctrl.Len())
	for idx, entry := range ctrl.Value() {
		options[idx] = fmt.Sprintf("%d: %v", idx, entry)
	}
	return e.driver.Select(ctx, SelectConfig{Message: message, Options: options})
}

func (e *Editor) editAt(ctx context.Context, ctrl *field.Controller, index int) error {
	node, ok := ctrl.Schema().ItemAt(index)
	if !ok {
		return nil
	}

	switch node.Type {
	case schema.TypeBoolean:
		current, _ := currentAt(ctrl, index).(bool)
		answer, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Item %d", index),
			Default: current,
		})
		if err != nil {
			return err
		}
		return ctrl.Change(index, answer)
	case schema.TypeInteger, schema.TypeNumber:
		answer, err := e.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Item %d", index),
			Default: defaultString(currentAt(ctrl, index)),
		})
		if err != nil {
			return err
		}
		parsed, err := parseNumber(node.Type, answer)
		if err != nil {
			if infoErr := e.driver.Info(ctx, err.Error()); infoErr != nil {
				return infoErr
			}
			return nil
		}
		return ctrl.Change(index, parsed)
	default:
		answer, err := e.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Item %d", index),
			Default: defaultString(currentAt(ctrl, index)),
		})
		if err != nil {
			return err
		}
		return ctrl.Change(index, answer)
	}
}

func (e *Editor) printValue(ctx context.Context, ctrl *field.Controller) error {
	return e.driver.Info(ctx, fmt.Sprintf("current value (%d items): %v", ctrl.Len(), ctrl.Value()))
}

func promptTitle(ctrl *field.Controller, fallback string) string {
	if title := strings.TrimSpace(ctrl.Schema().Title); title != "" {
		return title
	}
	return fallback
}

func currentAt(ctrl *field.Controller, index int) any {
	items := ctrl.Value()
	if index < 0 || index >= len(items) {
		return nil
	}
	return items[index]
}

func defaultString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func parseNumber(schemaType, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if schemaType == schema.TypeInteger {
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("tui: %q is not an integer", raw)
		}
		return parsed, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, fmt.Errorf("tui: %q is not a number", raw)
	}
	return parsed, nil
}

// pathFile adapts an on-disk path to the dataurl.File interface.
type pathFile struct {
	path string
}

func (f pathFile) Name() string        { return filepath.Base(f.path) }
func (f pathFile) ContentType() string { return "" }
func (f pathFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
