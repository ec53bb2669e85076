package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const defaultPrayerTime = "30분"

type QTChecks struct {
	Bible     bool `json:"bible"`
	Prayer    bool `json:"prayer"`
	Gratitude bool `json:"gratitude"`
}

// QTRecord is one day of the devotional checklist.
type QTRecord struct {
	CheckedItems   QTChecks `json:"checkedItems"`
	PrayerTime     string   `json:"prayerTime"`
	BibleText      string   `json:"bibleText"`
	GratitudeTexts []string `json:"gratitudeTexts"`
}

func NewQTRecord() QTRecord {
	return QTRecord{PrayerTime: defaultPrayerTime, GratitudeTexts: []string{"", "", ""}}
}

// Progress is the share of checked items, in percent.
func (r QTRecord) Progress() int {
	n := 0
	for _, c := range []bool{r.CheckedItems.Bible, r.CheckedItems.Prayer, r.CheckedItems.Gratitude} {
		if c {
			n++
		}
	}
	return int(math.Round(float64(n) / 3 * 100))
}

// QTEdit holds the changes of one "qt save"; nil fields are left alone.
type QTEdit struct {
	BibleText  *string
	PrayerTime *string
	Gratitude  []string
	Check      []string
	Uncheck    []string
}

func (e QTEdit) apply(r *QTRecord) error {
	if e.BibleText != nil {
		r.BibleText = *e.BibleText
	}
	if e.PrayerTime != nil {
		r.PrayerTime = *e.PrayerTime
		r.CheckedItems.Prayer = true
	}
	for i, text := range e.Gratitude {
		if i >= len(r.GratitudeTexts) {
			r.GratitudeTexts = append(r.GratitudeTexts, "")
		}
		r.GratitudeTexts[i] = text
		if strings.TrimSpace(text) != "" {
			r.CheckedItems.Gratitude = true
		}
	}
	for _, item := range e.Check {
		if err := r.CheckedItems.set(item, true); err != nil {
			return err
		}
	}
	for _, item := range e.Uncheck {
		if err := r.CheckedItems.set(item, false); err != nil {
			return err
		}
	}
	return nil
}

func (c *QTChecks) set(item string, v bool) error {
	switch item {
	case "bible":
		c.Bible = v
	case "prayer":
		c.Prayer = v
	case "gratitude":
		c.Gratitude = v
	default:
		return fmt.Errorf("unknown checklist item %q (bible, prayer, gratitude)", item)
	}
	return nil
}

// QTDateKey formats t the way records are keyed, e.g. "2026-1-4".
func QTDateKey(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), t.Month(), t.Day())
}

func (a *App) loadQT(ctx context.Context, date string) (QTRecord, error) {
	r := NewQTRecord()
	raw, err := a.api.QT(ctx, date)
	if err != nil {
		return r, fmt.Errorf("fetch qt %s: %w", date, err)
	}
	if raw == nil {
		return r, nil
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		a.printf("저장된 기록을 읽을 수 없어 새로 시작합니다.\n")
		return NewQTRecord(), nil
	}
	if r.PrayerTime == "" {
		r.PrayerTime = defaultPrayerTime
	}
	if r.GratitudeTexts == nil {
		r.GratitudeTexts = []string{"", "", ""}
	}
	return r, nil
}

func (a *App) QTGet(ctx context.Context, date string) error {
	r, err := a.loadQT(ctx, date)
	if err != nil {
		return err
	}
	a.printQT(date, r)
	return nil
}

// QTSave merges edit into the stored record of date and saves it.
func (a *App) QTSave(ctx context.Context, date string, edit QTEdit) error {
	r, err := a.loadQT(ctx, date)
	if err != nil {
		return err
	}
	if err := edit.apply(&r); err != nil {
		return err
	}
	if err := a.api.SaveQT(ctx, date, r); err != nil {
		return fmt.Errorf("save qt %s: %w", date, err)
	}
	a.printf("저장되었습니다.\n")
	a.printQT(date, r)
	return nil
}

func (a *App) printQT(date string, r QTRecord) {
	box := func(b bool) string {
		if b {
			return "[x]"
		}
		return "[ ]"
	}
	a.printf("%s 경건생활 %d%%\n", date, r.Progress())
	a.printf("%s 말씀 읽기 %s\n", box(r.CheckedItems.Bible), r.BibleText)
	a.printf("%s 기도 %s\n", box(r.CheckedItems.Prayer), r.PrayerTime)
	a.printf("%s 감사 제목\n", box(r.CheckedItems.Gratitude))
	for i, g := range r.GratitudeTexts {
		if g != "" {
			a.printf("    %d. %s\n", i+1, g)
		}
	}
}
