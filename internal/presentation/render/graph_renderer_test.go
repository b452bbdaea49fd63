package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"contract-dependency-graph/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *entity.DependencyGraph {
	return &entity.DependencyGraph{
		ContractAddress:   "0xContract",
		Deployer:          "0xDeployer",
		CreationTxHash:    "0xT",
		DeployerContracts: []entity.Address{"0xFactory"},
		FrequentCallers: []entity.CallerFrequency{
			{Address: "0xA", Count: 2},
			{Address: "0xB", Count: 1},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewGraphRenderer(&buf, false)

	require.NoError(t, r.Render(sampleGraph(), FormatJSON))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "0xContract", decoded["contract_address"])
	assert.Equal(t, "0xDeployer", decoded["deployer"])
	assert.Equal(t, []interface{}{"0xFactory"}, decoded["deployer_contracts"])
	assert.NotContains(t, decoded, "lookup_errors")

	callers := decoded["frequent_callers"].([]interface{})
	require.Len(t, callers, 2)
	assert.Equal(t, map[string]interface{}{"address": "0xA", "count": float64(2)}, callers[0])
}

func TestRenderJSONEmptyListsStayArrays(t *testing.T) {
	var buf bytes.Buffer
	graph := sampleGraph()
	graph.DeployerContracts = []entity.Address{}
	graph.FrequentCallers = []entity.CallerFrequency{}

	require.NoError(t, NewGraphRenderer(&buf, false).RenderJSON(graph))

	assert.Contains(t, buf.String(), `"deployer_contracts": []`)
	assert.Contains(t, buf.String(), `"frequent_callers": []`)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	graph := sampleGraph()
	graph.FrequentCallers = []entity.CallerFrequency{}
	graph.LookupErrors = map[string]string{"frequent_callers": "explorer txlist failed: request failed"}

	require.NoError(t, NewGraphRenderer(&buf, false).Render(graph, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Contract:     0xContract")
	assert.Contains(t, out, "Deployer:     0xDeployer")
	assert.Contains(t, out, "0xFactory")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "warning: frequent_callers lookup failed: explorer txlist failed: request failed")
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewGraphRenderer(&buf, false).Render(sampleGraph(), "xml")
	assert.Error(t, err)
}
