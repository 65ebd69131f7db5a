package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"RT100 트랙터 CAD", "rt100 트랙터 cad"},
		{"RT100_트랙터_CAD.dwg", "rt100 트랙터 cad"},
		{"rt100-트랙터--cad.PDF", "rt100 트랙터 cad"},
		{"RT100 회로도/블록도", "rt100 회로도 블록도"},
		{"RT 100 위험성 평가서 기초자료 (ISO 12100)", "rt 100 위험성 평가서 기초자료 iso 12100"},
		{"  유럽대리인계약서.hwp  ", "유럽대리인계약서 hwp"},
		{"report.final.docx", "report final"},
		{"", ""},
		{"...", ""},
		{"\t\n", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"RT100 트랙터 BOM",
		"RT100_BOM_v2.pdf",
		"Final_BOM_List_rev3.xlsx",
		"자율주행 트랙터 시험성적서 (최종).pdf",
		"a.b.c",
		"ÀÉÎ ünïcödé—dash",
		"foo.pdf ",
		"__--__",
		"İstanbul.TXT",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_EquivalentNames(t *testing.T) {
	assert.Equal(t, Normalize("RT100 BOM"), Normalize("rt100_bom.xlsx"))
	assert.Equal(t, Normalize("RT100 사용자 매뉴얼"), Normalize("RT100-사용자-매뉴얼.PDF"))
	assert.NotEqual(t, Normalize("RT100 BOM"), Normalize("RT100_BOM_v2.pdf"))
}
