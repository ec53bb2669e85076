package handlers

import (
	"context"
	"errors"
	"fmt"
	"shinkwang-site/app/console/client"
	"strings"
)

var errNameRequired = errors.New("이름을 입력해 주세요")

func (a *App) NewcomerRegister(ctx context.Context, n client.Newcomer) error {
	n.Name = strings.TrimSpace(n.Name)
	if n.Name == "" {
		return errNameRequired
	}
	if err := a.api.RegisterNewcomer(ctx, &n); err != nil {
		return fmt.Errorf("register newcomer: %w", err)
	}
	a.printf("%s님, 성남신광교회에 오신 것을 환영합니다!\n", n.Name)
	return nil
}

func (a *App) NewcomerList(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	list, err := a.api.Newcomers(ctx)
	if err != nil {
		return fmt.Errorf("fetch newcomers: %w", err)
	}
	if len(list) == 0 {
		a.printf("등록된 새가족이 없습니다.\n")
		return nil
	}
	for _, n := range list {
		a.printf("#%d %s  %s  생년월일 %s  등록 %s\n", n.ID, n.Name, n.Phone, n.BirthDate, n.RegistrationDate.Format("2006-01-02"))
		if n.Address != "" {
			a.printf("    주소: %s\n", n.Address)
		}
		if n.Description != "" {
			a.printf("    메모: %s\n", n.Description)
		}
	}
	return nil
}

// NewcomerUpdate patches the newcomer with id using json field names, e.g. phone=010-0000-0000.
func (a *App) NewcomerUpdate(ctx context.Context, id uint, fields map[string]string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	list, err := a.api.Newcomers(ctx)
	if err != nil {
		return fmt.Errorf("fetch newcomers: %w", err)
	}

	var target *client.Newcomer
	for i := range list {
		if list[i].ID == id {
			target = &list[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("newcomer #%d not found", id)
	}

	updated, err := applyFields(*target, fields)
	if err != nil {
		return err
	}
	if err := a.api.UpdateNewcomer(ctx, &updated); err != nil {
		return fmt.Errorf("update newcomer #%d: %w", id, err)
	}
	a.printf("수정되었습니다.\n")
	return nil
}

func (a *App) NewcomerDelete(ctx context.Context, id uint) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.api.DeleteNewcomer(ctx, id); err != nil {
		return fmt.Errorf("delete newcomer #%d: %w", id, err)
	}
	a.printf("삭제되었습니다.\n")
	return nil
}
