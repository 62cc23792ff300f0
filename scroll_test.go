package gui

import "testing"

func TestScrollContentHeightAndClamp(t *testing.T) {
	s := NewScrollContainer(0, 0, 200, 300)
	for i := 0; i < 50; i++ {
		s.AddChild(&recorder{Base: NewBase(0, i*45, 150, 45)})
	}

	if s.ContentHeight() != 2250 {
		t.Fatalf("content height = %d, want 2250", s.ContentHeight())
	}
	s.ScrollBy(999999)
	if s.Offset() != 1950 {
		t.Fatalf("offset = %d, want 2250-300 = 1950", s.Offset())
	}
	s.ScrollBy(-999999)
	if s.Offset() != 0 {
		t.Fatalf("offset = %d, want 0", s.Offset())
	}
}

func TestScrollOffsetReclampsWhenContentShrinks(t *testing.T) {
	s := NewScrollContainer(0, 0, 200, 100)
	a := &recorder{Base: NewBase(0, 0, 150, 80)}
	b := &recorder{Base: NewBase(0, 80, 150, 80)}
	s.AddChild(a)
	s.AddChild(b)

	s.ScrollBy(999)
	if s.Offset() != 60 {
		t.Fatalf("offset = %d, want 60", s.Offset())
	}
	s.RemoveChild(b)
	if s.Offset() != 0 {
		t.Fatalf("offset = %d after shrink, want re-clamp to 0", s.Offset())
	}
}

func TestScrollNoScrollingWhenContentFits(t *testing.T) {
	s := NewScrollContainer(0, 0, 200, 300)
	s.AddChild(&recorder{Base: NewBase(0, 0, 150, 100)})

	s.ScrollBy(50)
	if s.Offset() != 0 {
		t.Fatalf("offset = %d, want 0 when content fits", s.Offset())
	}
	if _, _, ok := s.scrollbarGeom(); ok {
		t.Fatal("no scrollbar should be shown when content fits")
	}
}

func TestScrollSpacingCountsIntoExtent(t *testing.T) {
	s := NewScrollContainer(0, 0, 200, 300)
	s.SetSpacing(5)
	s.AddChild(&recorder{Base: NewBase(0, 0, 150, 400)})

	if s.ContentHeight() != 405 {
		t.Fatalf("content height = %d, want 405", s.ContentHeight())
	}
}

func TestScrollChildClickCoordinateTranslation(t *testing.T) {
	w, _ := testWindow()
	s := NewScrollContainer(50, 100, 200, 300)
	child := &recorder{Base: NewBase(10, 500, 100, 40), consumeClicks: true}
	s.AddChild(child)
	s.AddChild(&recorder{Base: NewBase(0, 800, 150, 45)}) // pushes content past the viewport
	w.AddWidget(s)
	s.ScrollTo(480)

	// Window point (80, 140) is content point (30, 520), inside the
	// child.
	w.pointerMoved(80, 140)
	w.dispatchMouseButton(MouseButtonLeft, Press, 0)

	if len(child.clicks) != 1 {
		t.Fatalf("child saw %d clicks, want 1", len(child.clicks))
	}
	got := child.clicks[0]
	if got.x != 30 || got.y != 520 {
		t.Fatalf("child click at (%v,%v), want content-space (30,520)", got.x, got.y)
	}
}

func TestScrollClickInsideBoundsIsConsumed(t *testing.T) {
	w, _ := testWindow()
	under := &recorder{Base: NewBase(0, 0, 400, 400), consumeClicks: true}
	s := NewScrollContainer(50, 50, 200, 200)
	w.AddWidget(under)
	w.AddWidget(s)

	// Empty area of the container: the press must not fall through.
	w.pointerMoved(100, 100)
	w.dispatchMouseButton(MouseButtonLeft, Press, 0)
	if len(under.clicks) != 0 {
		t.Fatalf("widget under the container saw %d clicks, want 0", len(under.clicks))
	}

	// Outside the container the underlying widget sees it.
	w.pointerMoved(300, 300)
	w.dispatchMouseButton(MouseButtonLeft, Press, 0)
	if len(under.clicks) != 1 {
		t.Fatalf("underlying widget saw %d clicks, want 1", len(under.clicks))
	}
}

func TestScrollChildrenLaterAddedWins(t *testing.T) {
	w, _ := testWindow()
	s := NewScrollContainer(0, 0, 200, 300)
	first := &recorder{Base: NewBase(0, 0, 100, 100), consumeClicks: true}
	second := &recorder{Base: NewBase(0, 0, 100, 100), consumeClicks: true}
	s.AddChild(first)
	s.AddChild(second)
	s.AddChild(&recorder{Base: NewBase(0, 300, 100, 100)})
	w.AddWidget(s)

	w.pointerMoved(50, 50)
	w.dispatchMouseButton(MouseButtonLeft, Press, 0)

	if len(second.clicks) != 1 || len(first.clicks) != 0 {
		t.Fatalf("clicks first=%d second=%d, want 0/1", len(first.clicks), len(second.clicks))
	}
}

func TestScrollWheelAdjustsOffset(t *testing.T) {
	w, _ := testWindow()
	s := NewScrollContainer(0, 0, 200, 300)
	for i := 0; i < 20; i++ {
		s.AddChild(&recorder{Base: NewBase(0, i*45, 150, 45)})
	}
	w.AddWidget(s)

	w.pointerMoved(100, 100)
	w.dispatchScroll(0, -2) // wheel down scrolls the content down
	if s.Offset() != 2*wheelStep {
		t.Fatalf("offset = %d, want %d", s.Offset(), 2*wheelStep)
	}
	w.dispatchScroll(0, 1)
	if s.Offset() != wheelStep {
		t.Fatalf("offset = %d, want %d", s.Offset(), wheelStep)
	}

	// Wheel outside the bounds is ignored.
	w.pointerMoved(500, 500)
	w.dispatchScroll(0, -1)
	if s.Offset() != wheelStep {
		t.Fatalf("offset = %d after out-of-bounds wheel, want %d", s.Offset(), wheelStep)
	}
}

func TestScrollWheelStepConfigurable(t *testing.T) {
	w, _ := testWindow()
	s := NewScrollContainer(0, 0, 200, 300)
	s.SetWheelStep(10)
	for i := 0; i < 20; i++ {
		s.AddChild(&recorder{Base: NewBase(0, i*45, 150, 45)})
	}
	w.AddWidget(s)

	w.pointerMoved(100, 100)
	w.dispatchScroll(0, -3)
	if s.Offset() != 30 {
		t.Fatalf("offset = %d with 10px step, want 30", s.Offset())
	}
}

func TestScrollThumbDrag(t *testing.T) {
	w, _ := testWindow()
	// Height 300, content 600: thumb height 150, travel 150,
	// maxOffset 300. 1px of thumb movement is 2px of content.
	s := NewScrollContainer(0, 0, 200, 300)
	for i := 0; i < 2; i++ {
		s.AddChild(&recorder{Base: NewBase(0, i*300, 150, 300)})
	}
	w.AddWidget(s)

	thumbX := float32(s.scrollbarX()) + 2

	// Grab the thumb 10px from its top and pull down 75px.
	w.pointerMoved(thumbX, 10)
	w.dispatchMouseButton(MouseButtonLeft, Press, 0)
	if s.Offset() != 0 {
		t.Fatalf("offset = %d on thumb grab, want no jump", s.Offset())
	}
	w.pointerMoved(thumbX, 85)
	if s.Offset() != 150 {
		t.Fatalf("offset = %d after 75px thumb drag, want 150", s.Offset())
	}
	w.dispatchMouseButton(MouseButtonLeft, Release, 0)
}

func TestScrollChildAtSkipsScrollbarRegion(t *testing.T) {
	s := NewScrollContainer(0, 0, 200, 300)
	s.AddChild(&recorder{Base: NewBase(0, 0, 200, 300)})

	if s.ChildAt(100, 100) == nil {
		t.Fatal("expected a child under the pointer")
	}
	if got := s.ChildAt(float32(s.scrollbarX())+1, 100); got != nil {
		t.Fatalf("scrollbar region resolved child %v, want nil", got)
	}
}

func TestScrollContainerChildrenSnapshot(t *testing.T) {
	s := NewScrollContainer(0, 0, 200, 300)
	for i := 0; i < 3; i++ {
		s.AddChild(&recorder{Base: NewBase(0, i*50, 100, 40)})
	}
	kids := s.Children()
	if len(kids) != 3 {
		t.Fatalf("children = %d, want 3", len(kids))
	}
	s.ClearChildren()
	if len(kids) != 3 {
		t.Fatal("snapshot must not be affected by later clears")
	}
	if len(s.Children()) != 0 {
		t.Fatalf("children after clear = %d, want 0", len(s.Children()))
	}
}
