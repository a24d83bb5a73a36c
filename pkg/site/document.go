package site

import "fmt"

// BuildDocument assembles the generated code into a single self-contained
// HTML document: CSS inlined into a head style block, HTML in the body, JS
// in a script tag at the end of the body.
func BuildDocument(title string, code Code) string {
	if title == "" {
		title = "My Website"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
%s
    </style>
</head>
<body>
%s
    <script>
%s
    </script>
</body>
</html>
`, title, code.CSS, code.HTML, code.JS)
}
