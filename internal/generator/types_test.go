package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStructure_Nesting(t *testing.T) {
	t.Parallel()

	structure := BuildStructure([]string{
		"app.py",
		"pkg/models.py",
		"pkg/sub/util.py",
	})

	assert.Equal(t, "app.py.json", structure["app.py"])

	pkg, ok := structure["pkg"].(Structure)
	require.True(t, ok)
	assert.Equal(t, "pkg/models.py.json", pkg["models.py"])

	sub, ok := pkg["sub"].(Structure)
	require.True(t, ok)
	assert.Equal(t, "pkg/sub/util.py.json", sub["util.py"])
}

func TestBuildStructure_Empty(t *testing.T) {
	t.Parallel()

	structure := BuildStructure(nil)
	assert.Empty(t, structure)
	assert.NotNil(t, structure)
}

func TestBuildStructure_SiblingFilesShareDirectory(t *testing.T) {
	t.Parallel()

	structure := BuildStructure([]string{"pkg/a.py", "pkg/b.py"})
	pkg, ok := structure["pkg"].(Structure)
	require.True(t, ok)
	assert.Len(t, pkg, 2)
}
