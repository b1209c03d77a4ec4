package dataset

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterCSV = "\ufeffplayer_id,player_name,position,team,games,rating,active,birth_date\n" +
	"00-1,Patrick Mahomes,QB,KC,17,99.5,true,1995-09-17\n" +
	"00-2,Travis Kelce,TE,KC,16,NA,false,1989-10-05\n" +
	"00-3,,WR,BUF,,,,\n"

func TestReadCSVInfersTypes(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(rosterCSV))
	require.NoError(t, err)

	require.Len(t, tbl.Columns, 8)
	want := map[string]string{
		"player_id":   TypeString,
		"player_name": TypeString,
		"games":       TypeInteger,
		"rating":      TypeNumber,
		"active":      TypeBoolean,
		"birth_date":  TypeDatetime,
	}
	for name, typ := range want {
		col, ok := tbl.Column(name)
		require.True(t, ok, name)
		assert.Equal(t, typ, col.Type, name)
	}

	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, int64(17), tbl.Rows[0]["games"])
	assert.Equal(t, 99.5, tbl.Rows[0]["rating"])
	assert.Equal(t, true, tbl.Rows[0]["active"])
	assert.Nil(t, tbl.Rows[1]["rating"])
	assert.Nil(t, tbl.Rows[2]["player_name"])
	assert.Nil(t, tbl.Rows[2]["games"])
}

func TestReadCSVEmpty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tbl.Columns)
	assert.Empty(t, tbl.Rows)
}

func TestReadCSVDropsNonFiniteNumbers(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("player_id,wopr\na,0.5\nb,Inf\nc,-Infinity\n"))
	require.NoError(t, err)

	col, ok := tbl.Column("wopr")
	require.True(t, ok)
	assert.Equal(t, TypeNumber, col.Type)
	assert.Equal(t, 0.5, tbl.Rows[0]["wopr"])
	assert.Nil(t, tbl.Rows[1]["wopr"])
	assert.Nil(t, tbl.Rows[2]["wopr"])

	_, err = json.Marshal(tbl.Page("seasonal", nil, 10, 0))
	assert.NoError(t, err)
}

func TestFromRecordsPadsShortRows(t *testing.T) {
	tbl := FromRecords([]string{"a", "b"}, [][]string{{"1"}, {"2", "x"}})
	assert.Nil(t, tbl.Rows[0]["b"])
	assert.Equal(t, "x", tbl.Rows[1]["b"])
}

func TestPageProjectsAndSlices(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(rosterCSV))
	require.NoError(t, err)

	page := tbl.Page(Rosters, []string{"team", "missing", "player_id", "team"}, 1, 1)
	assert.Equal(t, []string{"team", "player_id"}, page.Columns)
	assert.Equal(t, 3, page.TotalRows)
	require.Len(t, page.Data, 1)
	assert.Equal(t, Row{"team": "KC", "player_id": "00-2"}, page.Data[0])

	page = tbl.Page(Rosters, nil, 100, 10)
	assert.Len(t, page.Columns, 8)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)

	page = tbl.Page(Rosters, []string{"nope"}, 10, 0)
	assert.Len(t, page.Columns, 8)
	assert.Len(t, page.Data, 3)
}

func TestAppendUnionsAndWidens(t *testing.T) {
	a := FromRecords([]string{"id", "yards"}, [][]string{{"1", "10"}})
	b := FromRecords([]string{"id", "yards", "tds"}, [][]string{{"2", "12.5", "1"}})

	a.Append(b)
	assert.Equal(t, []string{"id", "yards", "tds"}, a.ColumnNames())
	col, _ := a.Column("yards")
	assert.Equal(t, TypeNumber, col.Type)
	assert.Len(t, a.Rows, 2)
}

func TestColumnNormalize(t *testing.T) {
	var v map[string]any
	dec := json.NewDecoder(strings.NewReader(`{"n": 12, "f": 1.5}`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v))

	assert.Equal(t, int64(12), Column{Type: TypeInteger}.Normalize(v["n"]))
	assert.Equal(t, 1.5, Column{Type: TypeNumber}.Normalize(v["f"]))
	assert.Equal(t, "x", Column{Type: TypeString}.Normalize("x"))
}

func TestRegistry(t *testing.T) {
	all := All()
	require.Len(t, all, 3)

	info, ok := Lookup(Seasonal)
	require.True(t, ok)
	assert.True(t, info.SupportsYears)
	require.NotNil(t, info.MinYear)
	assert.Equal(t, 1999, *info.MinYear)

	teams, ok := Lookup(Teams)
	require.True(t, ok)
	assert.Nil(t, teams.MinYear)

	_, ok = Lookup("pbp")
	assert.False(t, ok)
}
