package filecsv_test

import (
	"errors"
	"strings"
	"testing"

	"leadbridge/domain/model"
	"leadbridge/infrastructure/filecsv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadContacts(t *testing.T) {
	input := "\ufeffFirstname, Lastname,Mobile,Email,Ad Set\n" +
		"Ali,Naveed,0512345678,ali@example.com,Summer A\n" +
		"Sara,Khan,0512345679,sara@example.com,Summer B\n"

	sheet, err := filecsv.ReadContacts(strings.NewReader(input), "TikTok", 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"Ad Set"}, sheet.ExtraColumns)
	require.Len(t, sheet.Records, 2)
	assert.Equal(t, model.ContactRecord{
		Firstname: "Ali",
		Lastname:  "Naveed",
		Mobile:    "0512345678",
		Email:     "ali@example.com",
		Extra:     map[string]string{"Ad Set": "Summer A"},
	}, sheet.Records[0])
	assert.Equal(t, "Sara", sheet.Records[1].Firstname)
}

func TestReadContacts_ColumnOrderDoesNotMatter(t *testing.T) {
	input := "Email,Mobile,Lastname,Firstname\nali@example.com,0512345678,Naveed,Ali\n"

	sheet, err := filecsv.ReadContacts(strings.NewReader(input), "Snapchat", 0)
	require.NoError(t, err)
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, "Ali", sheet.Records[0].Firstname)
	assert.Equal(t, "ali@example.com", sheet.Records[0].Email)
	assert.Nil(t, sheet.Records[0].Extra)
	assert.Empty(t, sheet.ExtraColumns)
}

func TestReadContacts_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxRows int
		missing []string
		message string
	}{
		{
			name:    "missing email column",
			input:   "Firstname,Lastname,Mobile\nAli,Naveed,0512345678\n",
			missing: []string{"Email"},
			message: "CSV must include",
		},
		{
			name:    "missing several columns",
			input:   "Name,Phone\nAli,0512345678\n",
			missing: []string{"Firstname", "Lastname", "Mobile", "Email"},
			message: "CSV must include",
		},
		{
			name:    "empty file",
			input:   "",
			message: "empty",
		},
		{
			name:    "row longer than header",
			input:   "Firstname,Lastname,Mobile,Email\nAli,Naveed,0512345678,ali@example.com,extra\n",
			message: "line 2 has 5 fields, header has 4",
		},
		{
			name:    "unterminated quote",
			input:   "Firstname,Lastname,Mobile,Email\n\"Ali,Naveed,0512345678,ali@example.com\n",
			message: "invalid CSV",
		},
		{
			name:    "too many rows",
			input:   "Firstname,Lastname,Mobile,Email\na,b,c,d\ne,f,g,h\n",
			maxRows: 1,
			message: "more than 1 rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := filecsv.ReadContacts(strings.NewReader(tt.input), "TikTok", tt.maxRows)
			assert.Nil(t, sheet)

			var vErr *model.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "TikTok", vErr.Section)
			assert.Contains(t, vErr.Error(), tt.message)
			assert.Equal(t, tt.missing, vErr.Missing)
		})
	}
}

func TestReadContacts_HeaderOnly(t *testing.T) {
	sheet, err := filecsv.ReadContacts(strings.NewReader("Firstname,Lastname,Mobile,Email\n"), "TikTok", 10)
	require.NoError(t, err)
	assert.Empty(t, sheet.Records)
}

func TestReadContacts_EmptyValuesAreAccepted(t *testing.T) {
	sheet, err := filecsv.ReadContacts(strings.NewReader("Firstname,Lastname,Mobile,Email\n,,,\n"), "TikTok", 10)
	require.NoError(t, err)
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, "", sheet.Records[0].Email)
}

func TestReadContacts_QuotedHeaderAfterBOM(t *testing.T) {
	input := "\ufeff\"Firstname\",\"Lastname\",\"Mobile\",\"Email\"\n" +
		"\"Ali\",\"Naveed\",\"0512345678\",\"ali@example.com\"\n"

	sheet, err := filecsv.ReadContacts(strings.NewReader(input), "TikTok", 10)
	require.NoError(t, err)
	require.Len(t, sheet.Records, 1)
	assert.Equal(t, "Ali", sheet.Records[0].Firstname)
	assert.Equal(t, "ali@example.com", sheet.Records[0].Email)
}

func TestReadContacts_ShortRowsArePadded(t *testing.T) {
	input := "Firstname,Lastname,Mobile,Email,Ad Set,Notes\n" +
		"Ali,Naveed,0512345678,ali@example.com,Summer A\n" +
		"Sara,Khan\n"

	sheet, err := filecsv.ReadContacts(strings.NewReader(input), "TikTok", 10)
	require.NoError(t, err)
	require.Len(t, sheet.Records, 2)
	assert.Equal(t, map[string]string{"Ad Set": "Summer A", "Notes": ""}, sheet.Records[0].Extra)
	assert.Equal(t, model.ContactRecord{
		Firstname: "Sara",
		Lastname:  "Khan",
		Extra:     map[string]string{"Ad Set": "", "Notes": ""},
	}, sheet.Records[1])
}
