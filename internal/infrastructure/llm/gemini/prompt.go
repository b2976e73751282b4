package gemini

import "strings"

const classificationPrompt = `Eres un clasificador. Dada una pregunta en español sobre empleados, responde SOLO con uno de estos formatos:
- DEPARTAMENTO:"<nombre_departamento>"
- ESTADO:INACTIVO | ESTADO:VACACIONES | ESTADO:ACTIVO
- CARGO:"<texto_cargo>"
- TODO

Ejemplos:
"¿Cuántos empleados pertenecen al departamento de Tecnología?" -> DEPARTAMENTO:"Tecnología"
"¿Cuántos están inactivos?" -> ESTADO:INACTIVO
"¿Cuántos auxiliares hay?" -> CARGO:"auxiliar"
"Total de empleados" -> TODO

Pregunta: {question}
Responde solo con el formato indicado, sin explicaciones.`

// buildQueryPrompt embeds the question verbatim; the model answer is parsed
// as a tag, never executed.
func buildQueryPrompt(question string) string {
	return strings.Replace(classificationPrompt, "{question}", question, 1)
}
