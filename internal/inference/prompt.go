// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inference

import (
	"bytes"
	"text/template"
)

// titlePromptTmpl asks the model to fill a JSON-shaped record for the
// document. Only pdf_title is read back; the other fields anchor the model
// on bibliographic structure.
var titlePromptTmpl = template.Must(template.New("title").Parse(`### Template:
{
    "pdf_title": "",
    "pdf_journal": "",
    "pdf_volume_issue": "",
    "pdf_url": "",
    "pdf_authors": ""
}
### Example:
"Filtering After Shading With Stochastic Texture Filtering
MATT PHARR, NVIDIA, USA
BARTLOMIEJ WRONSKI, NVIDIA, USA
MARCO SALVI, NVIDIA, USA
MARCOS FAJARDO, Shiokara-Engawa Research, Spain
2D texture maps and 3D voxel arrays are widely used to add rich detail to the surfaces and volumes of
rendered scenes, and filtered texture lookups are integral to producing high-quality imagery. We show that
applying the texture filter after evaluating shading generally gives more accurate imagery than filtering
textures before BSDF evaluation, as is current practice.
ACM Reference Format:
Matt Pharr, Bartlomiej Wronski, Marco Salvi, and Marcos Fajardo. 2024. Filtering After Shading With Stochastic
Texture Filtering. Proc. ACM Comput. Graph. Interact. Tech. 7, 1, Article 1 (May 2024), 29 pages. https://doi.org/
10.1145/3651293"
{
    "pdf_title": "Filtering After Shading With Stochastic Texture Filtering",
    "pdf_journal": "Proc. ACM Comput. Graph. Interact. Tech.",
    "pdf_volume_issue": "7, 1",
    "pdf_url": "https://doi.org/10.1145/3651293",
    "pdf_authors": "Matt Pharr, Bartlomiej Wronski, Marco Salvi, Marcos Fajardo"
}
### Text:
"{{.Text}}"
Respond with the filled JSON object only.
`))

// renderPrompt executes the title prompt with text cut to maxChars runes.
// maxChars <= 0 disables the cut.
func renderPrompt(text string, maxChars int) (string, error) {
	var buf bytes.Buffer
	data := struct{ Text string }{Text: truncateRunes(text, maxChars)}
	if err := titlePromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
