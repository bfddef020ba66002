package snake

import (
	"testing"

	"github.com/hoshinonyaruko/rusty-snake/structs"
)

func TestWrapCoordinate(t *testing.T) {
	tests := []struct {
		v, size, want int
	}{
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 0},
		{-1, 10, 9}, // 负数也要正确绕回
		{-10, 10, 0},
		{-11, 10, 9},
		{25, 10, 5},
	}
	for _, tt := range tests {
		if got := WrapCoordinate(tt.v, tt.size); got != tt.want {
			t.Errorf("WrapCoordinate(%d, %d) = %d, want %d", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestShiftBody(t *testing.T) {
	body := []structs.Segment{
		{Position: structs.Position{X: 5, Y: 5}, Kind: structs.KindHead},
		{Position: structs.Position{X: 4, Y: 5}, Kind: structs.KindEmptyStomach},
		{Position: structs.Position{X: 3, Y: 5}, Kind: structs.KindTail},
	}

	ShiftBody(body, structs.Position{X: 6, Y: 5})

	if len(body) != 3 {
		t.Fatalf("shift changed body length: %d", len(body))
	}
	// 每一节应该移动到前一节原来的位置
	wantPos := []structs.Position{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}
	for i, want := range wantPos {
		if body[i].Position != want {
			t.Errorf("body[%d].Position = %v, want %v", i, body[i].Position, want)
		}
	}
	// 类型跟着节走，不跟着位置走
	if body[0].Kind != structs.KindHead {
		t.Errorf("body[0].Kind = %v, want head", body[0].Kind)
	}
	if body[1].Kind != structs.KindEmptyStomach {
		t.Errorf("body[1].Kind = %v, want empty_stomach", body[1].Kind)
	}
	if body[2].Kind != structs.KindTail {
		t.Errorf("body[2].Kind = %v, want tail", body[2].Kind)
	}
}

func TestInsertSegment(t *testing.T) {
	body := []structs.Segment{
		{Position: structs.Position{X: 5, Y: 5}, Kind: structs.KindHead},
		{Position: structs.Position{X: 4, Y: 5}, Kind: structs.KindTail},
	}

	body = InsertSegment(body, 1, structs.Segment{
		Position: structs.Position{X: 9, Y: 9},
		Kind:     structs.KindEmptyStomach,
	})

	if len(body) != 3 {
		t.Fatalf("body length = %d, want 3", len(body))
	}
	if body[1].Kind != structs.KindEmptyStomach || body[1].Position != (structs.Position{X: 9, Y: 9}) {
		t.Errorf("inserted segment wrong: %+v", body[1])
	}
	if body[2].Kind != structs.KindTail {
		t.Errorf("tail segment not shifted back: %+v", body[2])
	}
}

func TestAppendTail(t *testing.T) {
	body := NewBody(structs.Position{X: 3, Y: 3})
	body = AppendTail(body)

	if len(body) != 2 {
		t.Fatalf("body length = %d, want 2", len(body))
	}
	if body[1].Kind != structs.KindTail {
		t.Errorf("appended segment kind = %v, want tail", body[1].Kind)
	}
	// 新尾巴与原末尾重合
	if body[1].Position != body[0].Position {
		t.Errorf("appended tail position = %v, want %v", body[1].Position, body[0].Position)
	}
}

func TestTailCountAndFirstIndex(t *testing.T) {
	body := []structs.Segment{
		{Kind: structs.KindHead},
		{Kind: structs.KindEmptyStomach},
		{Kind: structs.KindFullStomach},
		{Kind: structs.KindTail},
		{Kind: structs.KindTail},
	}

	if got := TailCount(body); got != 2 {
		t.Errorf("TailCount = %d, want 2", got)
	}
	if got := FirstIndexOfKind(body, structs.KindFullStomach); got != 2 {
		t.Errorf("FirstIndexOfKind(full) = %d, want 2", got)
	}
	if got := FirstIndexOfKind(body, structs.KindTail); got != 3 {
		t.Errorf("FirstIndexOfKind(tail) = %d, want 3", got)
	}
	if got := FirstIndexOfKind(body[:1], structs.KindTail); got != -1 {
		t.Errorf("FirstIndexOfKind on missing kind = %d, want -1", got)
	}
}
