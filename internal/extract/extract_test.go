package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDocx builds a minimal .docx archive containing the given document
// part and returns its path.
func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "case.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	part, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, Supported("opinion.docx"))
	assert.True(t, Supported("OPINION.DOCX"))
	assert.True(t, Supported("notes.txt"))
	assert.False(t, Supported("scan.pdf"))
	assert.False(t, Supported("archive.zip"))
	assert.False(t, Supported("README"))
}

func TestFromFile_Txt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "opinion.txt")
	require.NoError(t, os.WriteFile(path, []byte("the court held"), 0o644))

	text, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "the court held", text)
}

func TestFromFile_Docx(t *testing.T) {
	t.Parallel()

	const doc = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Reynolds v. Bordelon,</w:t></w:r><w:r><w:t> 172 So. 3d 607</w:t></w:r></w:p>
    <w:p><w:r><w:t>Supreme Court of Louisiana.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := FromFile(writeDocx(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "Reynolds v. Bordelon, 172 So. 3d 607\nSupreme Court of Louisiana.", text)
}

func TestFromFile_DocxIgnoresNonTextElements(t *testing.T) {
	t.Parallel()

	const doc = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>heading</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := FromFile(writeDocx(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "heading", text)
}

func TestFromFile_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := FromFile("scan.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFromFile_DocxMissingDocumentPart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	part, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	_, err = FromFile(path)
	assert.ErrorIs(t, err, ErrNoDocumentBody)
}

func TestFromFile_DocxNotAZip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "garbage.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	_, err := FromFile(path)
	assert.Error(t, err)
}
