package handlers

import (
	"context"
	"fmt"
	"gopkg.in/yaml.v3"
	"reflect"
	"shinkwang-site/app/sections"
	"strconv"
	"strings"
)

// SectionList prints every editable slot and whether it still shows its default.
func (a *App) SectionList(ctx context.Context) error {
	content, err := a.api.Content(ctx)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}

	for _, d := range sections.All() {
		mark := "저장됨"
		if raw, exist := content[d.Key().String()]; !exist {
			mark = "기본값"
		} else if d.Validate(raw) != nil {
			mark = "손상됨, 기본값 표시"
		}
		a.printf("%-18s %-7s %s (%s)\n", d.Key(), d.Kind(), d.Label(), mark)
	}
	return nil
}

func (a *App) SectionShow(ctx context.Context, key string) error {
	d, ok := sections.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown section %q", key)
	}

	content, err := a.api.Content(ctx)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}

	switch s := d.(type) {
	case sections.Section[string]:
		a.printf("%s\n", s.From(content))
		return nil
	case sections.Section[sections.PastorProfile]:
		return a.printYAML(s.From(content))
	}

	switch sections.Key(key) {
	case sections.GeneralWorship.Key():
		return a.printYAML(sections.GeneralWorship.From(content))
	case sections.SchoolWorship.Key():
		return a.printYAML(sections.SchoolWorship.From(content))
	case sections.OfferingAccounts.Key():
		return a.printYAML(sections.OfferingAccounts.From(content))
	case sections.Sermons.Key():
		return a.printYAML(sections.Sermons.From(content))
	}
	return fmt.Errorf("unknown section %q", key)
}

// SectionSet replaces a text slot with value, or patches the pastor profile with fields.
func (a *App) SectionSet(ctx context.Context, key, value string, fields map[string]string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	d, ok := sections.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown section %q", key)
	}

	content, err := a.api.Content(ctx)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}

	switch s := d.(type) {
	case sections.Section[string]:
		e := sections.NewEditor(s, content, a.api)
		if err := e.Commit(ctx, value); err != nil {
			return err
		}
		a.printf("저장되었습니다.\n")
		return nil

	case sections.Section[sections.PastorProfile]:
		e := sections.NewEditor(s, content, a.api)
		draft, err := applyFields(e.Draft(), fields)
		if err != nil {
			return err
		}
		if err := e.Commit(ctx, draft); err != nil {
			return err
		}
		a.printf("저장되었습니다.\n")
		return a.printYAML(e.Value())
	}

	return fmt.Errorf("%s is a list, use \"section row\" to edit it", key)
}

// RowSave adds a row (id 0) or updates the row with id.
func (a *App) RowSave(ctx context.Context, key string, id int64, fields map[string]string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	switch sections.Key(key) {
	case sections.GeneralWorship.Key():
		return saveRow(ctx, a, sections.GeneralWorship, id, fields, nil)
	case sections.SchoolWorship.Key():
		return saveRow(ctx, a, sections.SchoolWorship, id, fields, nil)
	case sections.OfferingAccounts.Key():
		return saveRow(ctx, a, sections.OfferingAccounts, id, fields, nil)
	case sections.Sermons.Key():
		rest := make(map[string]string, len(fields))
		for k, v := range fields {
			rest[k] = v
		}
		start, end := rest["startTime"], rest["endTime"]
		delete(rest, "startTime")
		delete(rest, "endTime")
		return saveRow(ctx, a, sections.Sermons, id, rest, func(s sections.Sermon) sections.Sermon {
			return sections.PrepareSermon(s, start, end)
		})
	}
	return fmt.Errorf("%q is not a list section", key)
}

func (a *App) RowDelete(ctx context.Context, key string, id int64) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}

	switch sections.Key(key) {
	case sections.GeneralWorship.Key():
		return deleteRow(ctx, a, sections.GeneralWorship, id)
	case sections.SchoolWorship.Key():
		return deleteRow(ctx, a, sections.SchoolWorship, id)
	case sections.OfferingAccounts.Key():
		return deleteRow(ctx, a, sections.OfferingAccounts, id)
	case sections.Sermons.Key():
		return deleteRow(ctx, a, sections.Sermons, id)
	}
	return fmt.Errorf("%q is not a list section", key)
}

func saveRow[T sections.Row[T]](ctx context.Context, a *App, list sections.ListSection[T], id int64, fields map[string]string, prepare func(T) T) error {
	content, err := a.api.Content(ctx)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}
	e := sections.NewListEditor(list, content, a.api)

	var row T
	if id != 0 {
		existing, found := e.Row(id)
		if !found {
			return fmt.Errorf("%s #%d: %w", list.Key(), id, sections.ErrRowNotFound)
		}
		row = existing
	}

	row, err = applyFields(row, fields)
	if err != nil {
		return err
	}
	if prepare != nil {
		row = prepare(row)
	}

	saved, err := e.SaveRow(ctx, row)
	if err != nil {
		return err
	}
	a.printf("저장되었습니다. (id %d)\n", saved.RowID())
	return nil
}

func deleteRow[T sections.Row[T]](ctx context.Context, a *App, list sections.ListSection[T], id int64) error {
	content, err := a.api.Content(ctx)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}
	e := sections.NewListEditor(list, content, a.api)

	if err := e.DeleteRow(ctx, id); err != nil {
		return fmt.Errorf("%s #%d: %w", list.Key(), id, err)
	}
	a.printf("삭제되었습니다.\n")
	return nil
}

// applyFields sets struct fields by their json names from command-line strings.
// String slices are split on "|".
func applyFields[T any](v T, fields map[string]string) (T, error) {
	rv := reflect.ValueOf(&v).Elem()
	rt := rv.Type()

	index := map[string]int{}
	for i := range rt.NumField() {
		name, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			index[name] = i
		}
	}

	for name, raw := range fields {
		i, ok := index[name]
		if !ok || name == "id" {
			return v, fmt.Errorf("unknown field %q", name)
		}
		f := rv.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(raw)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return v, fmt.Errorf("field %q: %w", name, err)
			}
			f.SetInt(n)
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				return v, fmt.Errorf("field %q cannot be set from the command line", name)
			}
			var parts []string
			for _, p := range strings.Split(raw, "|") {
				if p = strings.TrimSpace(p); p != "" {
					parts = append(parts, p)
				}
			}
			f.Set(reflect.ValueOf(parts))
		default:
			return v, fmt.Errorf("field %q cannot be set from the command line", name)
		}
	}
	return v, nil
}

func (a *App) printYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = a.out.Write(out)
	return err
}
