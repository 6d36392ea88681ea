package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/clinsight/clinic-insights-api/internal/formula"
	"github.com/julienschmidt/httprouter"
)

// ListFormulas devolve o catálogo completo de fórmulas, na ordem estável das
// chaves.
func ListFormulas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keys := formula.Keys()
		sort.Strings(keys)

		definitions := make([]formula.Definition, 0, len(keys))
		for _, key := range keys {
			definitions = append(definitions, formula.GetFormula(key))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(definitions)
	}
}

// GetFormulaByKey devolve a definição de uma métrica. Chave desconhecida
// resolve para a entrada genérica, nunca 404: tooltips não podem quebrar.
func GetFormulaByKey() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := httprouter.ParamsFromContext(r.Context()).ByName("key")

		definition := formula.GetFormula(formula.ResolveMetricKey(key))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(definition)
	}
}
