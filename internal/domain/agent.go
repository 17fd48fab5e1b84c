package domain

// AgentProfile describes an assistant persona offered to businesses
type AgentProfile struct {
	Type         AgentType `json:"type"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Color        string    `json:"color"`
	SystemPrompt string    `json:"-"`
}

// DefaultSystemPrompt is used by the stateless chat proxy
const DefaultSystemPrompt = "You are a helpful business advisor."

var agentOrder = []AgentType{AgentTypeGeneral, AgentTypeSOP, AgentTypeCompliance, AgentTypeSocial}

var agentProfiles = map[AgentType]AgentProfile{
	AgentTypeGeneral: {
		Type:         AgentTypeGeneral,
		Name:         "General Business AI",
		Description:  "Strategic planning, general business advice, and operational guidance",
		Color:        "hsl(271, 91%, 65%)",
		SystemPrompt: "You are a general business assistant. Give practical advice on strategy, planning and day to day operations for a small business.",
	},
	AgentTypeSOP: {
		Type:         AgentTypeSOP,
		Name:         "SOP Assistant",
		Description:  "Create, update, and optimize standard operating procedures",
		Color:        "hsl(217, 91%, 60%)",
		SystemPrompt: "You are an SOP assistant. Help the user write, review and improve standard operating procedures as clear numbered steps.",
	},
	AgentTypeCompliance: {
		Type:         AgentTypeCompliance,
		Name:         "Regulatory Compliance",
		Description:  "Ensure compliance with industry regulations and policies",
		Color:        "hsl(142, 76%, 36%)",
		SystemPrompt: "You are a regulatory compliance assistant. Point out relevant regulations and policy gaps and recommend concrete controls. You do not give legal advice.",
	},
	AgentTypeSocial: {
		Type:         AgentTypeSocial,
		Name:         "Social Media Manager",
		Description:  "Content creation, scheduling, and social media strategy",
		Color:        "hsl(24, 95%, 53%)",
		SystemPrompt: "You are a social media manager. Draft posts, suggest posting schedules and outline campaign ideas that fit the business's brand.",
	},
}

// Agents returns the persona catalog in display order
func Agents() []AgentProfile {
	out := make([]AgentProfile, 0, len(agentOrder))
	for _, t := range agentOrder {
		out = append(out, agentProfiles[t])
	}
	return out
}

// AgentFor returns the profile for t, falling back to the general persona
func AgentFor(t AgentType) AgentProfile {
	if p, ok := agentProfiles[t]; ok {
		return p
	}
	return agentProfiles[AgentTypeGeneral]
}
