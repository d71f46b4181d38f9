package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbfernandes/bolso/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	csvContent := "data,descrição,valor\n2024-01-15,Salário,5000\n"
	ofxContent := "<STMTTRN>\n<DTPOSTED>20240113\n<TRNAMT>-180.00\n<MEMO>Fuel\n</STMTTRN>"

	t.Run("Dispatches CSV By Extension", func(t *testing.T) {
		got, err := svc.Import("extrato.csv", strings.NewReader(csvContent))

		require.NoError(t, err)
		assert.Len(t, got.Transactions, 1)
	})

	t.Run("Extension Is Case-Insensitive", func(t *testing.T) {
		got, err := svc.Import("EXTRATO.CSV", strings.NewReader(csvContent))

		require.NoError(t, err)
		assert.Len(t, got.Transactions, 1)
	})

	t.Run("Dispatches OFX By Extension", func(t *testing.T) {
		got, err := svc.Import("statement.ofx", strings.NewReader(ofxContent))

		require.NoError(t, err)
		assert.Len(t, got.Transactions, 1)
	})

	t.Run("Rejects Unsupported Extension", func(t *testing.T) {
		got, err := svc.Import("statement.pdf", strings.NewReader("%PDF-1.4"))

		assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
		assert.Nil(t, got)
	})

	t.Run("Rejects Missing Extension", func(t *testing.T) {
		_, err := svc.Import("statement", strings.NewReader(csvContent))

		assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)
	})

	t.Run("Transcodes Latin1 Content", func(t *testing.T) {
		// "descrição" and "Salário" encoded as Windows-1252.
		latin1 := "data,descri\xe7\xe3o,valor\n2024-01-15,Sal\xe1rio,5000\n"

		got, err := svc.Import("extrato.csv", strings.NewReader(latin1))

		require.NoError(t, err)
		require.Len(t, got.Transactions, 1)
		assert.Equal(t, "Salário", got.Transactions[0].Description)
	})
}
