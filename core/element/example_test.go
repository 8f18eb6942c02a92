package element_test

import (
	"fmt"

	"github.com/leofalp/spanseek/core/element"
)

type Item struct {
	SKU   string  `xml:"sku,attr"`
	Name  string  `xml:"name"`
	Price float64 `xml:"price"`
}

func ExampleExtract() {
	doc := `<order>
  <item sku="A1"><name>Lamp</name><price>19.5</price></item>
  <item sku="B2"><name>Desk</name><price>120</price></item>
</order>`

	items, err := element.Extract[Item](doc, "item")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, it := range items {
		fmt.Printf("%s %s %.2f\n", it.SKU, it.Name, it.Price)
	}
	// Output:
	// A1 Lamp 19.50
	// B2 Desk 120.00
}

func ExampleExtractRaw() {
	doc := `<page><note id="1"/><note id="2">read me</note></page>`

	sink := element.SinkFunc(func(m element.Match) error {
		fmt.Printf("%s [%d,%d) self-closing=%v %s\n", m.Tag, m.Start, m.End, m.SelfClosing, m.Text)
		return nil
	})
	if err := element.ExtractRaw(doc, []element.TagPriority{{Tag: "note"}}, sink); err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// note [6,20) self-closing=true <note id="1"/>
	// note [20,47) self-closing=false <note id="2">read me</note>
}
