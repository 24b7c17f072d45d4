package a2s

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Atoms(t *testing.T) {
	assert.Equal(t, `\dedicated\1`, Dedicated().String())
	assert.Equal(t, `\secure\1`, Secure().String())
	assert.Equal(t, `\gamedir\cstrike`, GameDir("cstrike").String())
	assert.Equal(t, `\map\de_dust2`, Map("de_dust2").String())
	assert.Equal(t, `\password\0`, NoPassword().String())
	assert.Equal(t, `\empty\1`, NotEmpty().String())
	assert.Equal(t, `\full\1`, NotFull().String())
	assert.Equal(t, `\appid\730`, AppID("730").String())
	assert.Equal(t, `\napp\730`, NotAppID("730").String())
	assert.Equal(t, `\gametype\coop,hard`, GameType("coop", "hard").String())
}

func TestFilter_NorNandComposite(t *testing.T) {
	f := Nor(Map("de_dust2"), Dedicated())
	assert.Equal(t, `\nor\2\map\de_dust2\dedicated\1`, f.String())

	g := Nand(Secure(), Linux())
	assert.Equal(t, `\nand\2\secure\1\linux\1`, g.String())
}

func TestRenderFilters(t *testing.T) {
	s := renderFilters([]Filter{Dedicated(), NoPassword()})
	assert.Equal(t, `\dedicated\1\password\0`, s)
}
