package root_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mcoudert/budget-engine/cmd/root"
	"mcoudert/budget-engine/internal/config"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "budget-engine", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Unify")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestConnectorsRequireConfiguration(t *testing.T) {
	original := root.Cfg
	defer func() { root.Cfg = original }()
	root.Cfg = &config.Config{}

	connectors := root.Connectors("")
	assert.Nil(t, connectors.Amex)
	assert.Nil(t, connectors.Monzo)
	assert.Nil(t, connectors.Splitwise)

	connectors = root.Connectors("statement.csv")
	assert.NotNil(t, connectors.Amex, "a statement file is the only amex configuration")

	root.Cfg.Splitwise.APIKey = "key"
	root.Cfg.Sheets.CredentialsFile = "creds.json"
	root.Cfg.Sheets.SpreadsheetID = "sheet-id"

	connectors = root.Connectors("")
	assert.NotNil(t, connectors.Monzo)
	assert.NotNil(t, connectors.Splitwise)
}
