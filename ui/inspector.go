package ui

import (
	"fmt"

	"github.com/pthm-cable/sanctuary/game"
)

// AnimalPanel describes the selected-animal inspector. Data is a game.AnimalView.
func AnimalPanel() PanelDescriptor {
	return PanelDescriptor{
		Title:  "Selected Animal",
		Width:  260,
		Anchor: AnchorBottomRight,
		Sections: []SectionDescriptor{
			{
				Fields: []FieldDescriptor{
					{Label: "Type", Widget: WidgetText, TextGetter: func(d any) string { return animal(d).Type }},
					{Label: "State", Widget: WidgetText, TextGetter: func(d any) string { return animal(d).State }},
					{Label: "ID", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(animal(d).ID) }},
				},
			},
			{
				Title: "Vitals",
				Fields: []FieldDescriptor{
					{Label: "Health", Widget: WidgetVital, Range: PercentRange(), Getter: func(d any) float32 { return float32(animal(d).Health) }},
					{Label: "Happiness", Widget: WidgetVital, Range: PercentRange(), Getter: func(d any) float32 { return float32(animal(d).Happiness) }},
				},
			},
			{
				Title: "Position",
				Fields: []FieldDescriptor{
					{Label: "At", Widget: WidgetText, TextGetter: func(d any) string {
						p := animal(d).Position
						return fmt.Sprintf("(%.0f, %.0f)", p.X(), p.Y())
					}},
				},
			},
		},
	}
}

func animal(d any) game.AnimalView {
	a, _ := d.(game.AnimalView)
	return a
}
