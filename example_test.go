package md2html_test

import (
	"context"
	"fmt"
	"log"

	md2html "github.com/alnah/go-md2html"
)

func ExampleConverter_Convert() {
	conv, err := md2html.NewConverter(md2html.WithoutHighlighting())
	if err != nil {
		log.Fatal(err)
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2html.Input{
		Markdown: "# Coffee\n\n## Tea\n\n## Tea\n",
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, h := range result.Outline {
		fmt.Println(h.Level, h.Anchor, h.Title)
	}
	fmt.Println(result.Title)
	// Output:
	// 1 coffee Coffee
	// 2 tea Tea
	// 2 tea-2 Tea
	// Coffee
}

func ExampleResolvePoolSize() {
	fmt.Println(md2html.ResolvePoolSize(3))
	// Output: 3
}
