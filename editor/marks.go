package editor

type markStack struct {
	items []Mark
}

func newMarkStack() *markStack {
	return &markStack{}
}

func (s *markStack) push(mark Mark) {
	s.items = append(s.items, cloneMark(mark))
}

func (s *markStack) popByType(markType string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].Type != markType {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}
	return false
}

func (s *markStack) current() []Mark {
	if len(s.items) == 0 {
		return nil
	}

	marks := make([]Mark, 0, len(s.items))
	for _, mark := range s.items {
		marks = append(marks, cloneMark(mark))
	}
	return marks
}

func cloneMark(mark Mark) Mark {
	cloned := mark
	if mark.Attrs != nil {
		cloned.Attrs = make(map[string]any, len(mark.Attrs))
		for key, value := range mark.Attrs {
			cloned.Attrs[key] = value
		}
	}
	return cloned
}
