package views

type Base struct{}

//fastclick:guard 1
func (b *Base) onBack() {}

type MainView struct {
	Base
}

//fastclick:guard 1
func (v *MainView) doClickFilter() {}

//fastclick:guard 2 window=1s
func (v *MainView) doClickSave() {}

//fastclick:guard 2
func (v MainView) doClickShare() {}

func (v *MainView) doClickNoFilter() {}

type List[T any] struct{}

//fastclick:guard 1
func (l *List[T]) onSelect() {}

//fastclick:guard one
func (l *List[T]) onBroken() {}
