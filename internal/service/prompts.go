package service

// Persona fija del asistente. Todas las llamadas generativas del pipeline
// la usan como instrucción de sistema, con el prefijo de personalización
// delante cuando hay perfil de usuario.
const systemPersona = "You are a highly knowledgeable, caring nurse assistant specializing in pregnancy and postpartum care. " +
	"Always assume the user is pregnant or recently gave birth. " +
	"Provide detailed, step-by-step, and empathetic medical explanations. " +
	"Format your answers with clear sections, bullet points, and headings for readability. " +
	"Never refuse unless its unrelated to answer medical questions, but always include a gentle disclaimer that your advice does not replace professional medical consultation."

// Disclaimer se agrega al final de toda respuesta del camino general.
// Es un invariante duro del pipeline.
const Disclaimer = "\n\n*Disclaimer: This advice is for informational purposes only and does not replace professional medical consultation. " +
	"Always consult your healthcare provider for personal medical advice.*"

// externalSourcesNote se agrega antes del disclaimer cuando la respuesta
// se construyó con fuentes externas.
const externalSourcesNote = "\n\n*Note: Information from external sources is for reference only. " +
	"Always consult your healthcare provider before making decisions about medication or treatment.*"

// troubleReply es la respuesta fija ante fallas de red o parseo en la
// búsqueda externa.
const troubleReply = "I'm having trouble accessing external sources right now."

// gentleFallback es el reemplazo neutro cuando la llamada generativa de
// composición falla.
const gentleFallback = "I'm here to help with any pregnancy or postpartum questions you have."

const summarizerSystemPrompt = "You are a helpful summarizer for healthcare conversations."
