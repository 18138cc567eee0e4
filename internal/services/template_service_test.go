package services

import (
	"context"
	"strings"
	"testing"
)

func TestTemplate_Lifecycle(t *testing.T) {
	svc := &TemplateService{DB: newTestDB(t)}
	ctx := context.Background()

	id1, err := svc.Add(ctx, "  Hola {nombre}, ¿sigue disponible el {auto}?  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	id2, _ := svc.Add(ctx, "Second {vehicle}")
	if id2 <= id1 {
		t.Fatalf("ids must grow: %d then %d", id1, id2)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("List = %+v, %v", list, err)
	}
	if list[0].ID != id1 || list[0].Body != "Hola {nombre}, ¿sigue disponible el {auto}?" {
		t.Fatalf("first template = %+v", list[0])
	}

	ok, err := svc.Update(ctx, id1, "Changed")
	if err != nil || !ok {
		t.Fatalf("Update = %v, %v", ok, err)
	}
	ok, err = svc.Update(ctx, 999, "x")
	if err != nil || ok {
		t.Fatalf("Update missing = %v, %v", ok, err)
	}

	ok, err = svc.Delete(ctx, id1)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	ok, err = svc.Delete(ctx, id1)
	if err != nil || ok {
		t.Fatalf("Delete again = %v, %v", ok, err)
	}

	list, _ = svc.List(ctx)
	if len(list) != 1 || list[0].ID != id2 {
		t.Fatalf("after delete = %+v", list)
	}
}

func TestTemplate_Validation(t *testing.T) {
	svc := &TemplateService{DB: newTestDB(t), MaxRunes: 10}
	ctx := context.Background()

	if _, err := svc.Add(ctx, "   "); !IsValidation(err) {
		t.Fatalf("blank: expected ValidationError, got %v", err)
	}
	if _, err := svc.Add(ctx, strings.Repeat("ñ", 11)); !IsValidation(err) {
		t.Fatalf("too long: expected ValidationError, got %v", err)
	}
	if _, err := svc.Add(ctx, strings.Repeat("ñ", 10)); err != nil {
		t.Fatalf("10 runes should fit: %v", err)
	}
	if _, err := svc.Update(ctx, 1, ""); !IsValidation(err) {
		t.Fatalf("blank update: expected ValidationError, got %v", err)
	}
}

func TestTemplate_ListEmptyIsNonNil(t *testing.T) {
	svc := &TemplateService{DB: newTestDB(t)}
	list, err := svc.List(context.Background())
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("List = %#v, %v", list, err)
	}
}
