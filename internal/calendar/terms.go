package calendar

import (
	"fmt"

	"suimei/internal/bazi"
)

// Jie is one of the twelve sectional solar terms that open a traditional month.
type Jie struct {
	Name      string
	Japanese  string
	Longitude float64
	Month     bazi.Branch
	// key is lunar-go's spelling for terms that sit at the edges of its yearly table.
	key string
}

// jieTable is ordered from Lichun, the start of the tiger month.
var jieTable = [12]Jie{
	{Name: "立春", Japanese: "立春", Longitude: 315, Month: bazi.Tiger, key: "LI_CHUN"},
	{Name: "惊蛰", Japanese: "啓蟄", Longitude: 345, Month: bazi.Rabbit, key: "JING_ZHE"},
	{Name: "清明", Japanese: "清明", Longitude: 15, Month: bazi.Dragon},
	{Name: "立夏", Japanese: "立夏", Longitude: 45, Month: bazi.Snake},
	{Name: "芒种", Japanese: "芒種", Longitude: 75, Month: bazi.Horse},
	{Name: "小暑", Japanese: "小暑", Longitude: 105, Month: bazi.Goat},
	{Name: "立秋", Japanese: "立秋", Longitude: 135, Month: bazi.Monkey},
	{Name: "白露", Japanese: "白露", Longitude: 165, Month: bazi.Rooster},
	{Name: "寒露", Japanese: "寒露", Longitude: 195, Month: bazi.Dog},
	{Name: "立冬", Japanese: "立冬", Longitude: 225, Month: bazi.Pig},
	{Name: "大雪", Japanese: "大雪", Longitude: 255, Month: bazi.Rat, key: "DA_XUE"},
	{Name: "小寒", Japanese: "小寒", Longitude: 285, Month: bazi.Ox, key: "XIAO_HAN"},
}

// JieByName accepts the Chinese or Japanese spelling of a term.
func JieByName(name string) (Jie, error) {
	for _, j := range jieTable {
		if name == j.Name || name == j.Japanese || (j.key != "" && name == j.key) {
			return j, nil
		}
	}
	return Jie{}, fmt.Errorf("%q is not a sectional solar term", name)
}
