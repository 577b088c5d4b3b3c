package mongodb

import "video-profile-extractor/internal/domain"

// defaultPromptOrder keeps listings deterministic when the store is unreachable.
var defaultPromptOrder = []string{
	domain.PromptProfileExtraction,
	domain.PromptCVGeneration,
	domain.PromptTechnicalTestGeneration,
}

// defaultPrompts is the built-in template table. It seeds an empty store at
// first startup and serves reads whenever the store is unreachable. Existing
// store content is never overwritten by these defaults.
var defaultPrompts = map[string]domain.PromptTemplate{
	domain.PromptProfileExtraction: {
		Name:        domain.PromptProfileExtraction,
		Description: "Extract profile information from transcribed text",
		Variables:   []string{"text"},
		Template: `Analyze the following transcribed text from a personal presentation video and extract comprehensive professional profile information.

Return ONLY a valid JSON object with exactly these fields:
- "name": Complete full name as stated. If only a first name is mentioned, use "FirstName (Last name not provided)".
- "profession": Specific job title or professional role, including seniority level if stated (Junior, Senior, Lead).
- "experience": Total years, roles held, industries worked in, key responsibilities and notable projects. Be specific about domains.
- "education": Degrees with field of study, institutions if mentioned, certifications and specialized training. If not explicitly stated, infer logically from the profession and mark the inference.
- "technologies": All tools, software, programming languages, frameworks and specific techniques mentioned, grouped logically.
- "languages": Spoken languages with proficiency levels when mentioned (e.g. Spanish - Native, English - C1).
- "achievements": Recognition, awards, measurable outcomes and relevant contributions. Prefer quantified results.
- "soft_skills": Interpersonal and professional competencies, explicit or inferred from context (led a team implies leadership).

If a field is not present and cannot be inferred, use "Not specified".

Text to analyze:
{text}

CRITICAL: respond ONLY with the raw JSON object. No markdown, no code fences, no explanations, no additional text. Ensure all JSON strings are properly escaped.`,
	},

	domain.PromptCVGeneration: {
		Name:        domain.PromptCVGeneration,
		Description: "Generate professional CV profile from transcription and extracted data",
		Variables:   []string{"transcription", "profile_data"},
		Template: `You are an elite CV writer crafting compelling professional narratives for top-tier recruitment firms. Based on the transcription and the extracted profile information below, write an optimized professional profile for a CV in the style of concise, impactful executive summaries.

Original transcription:
{transcription}

Extracted information:
{profile_data}

Mandatory requirements:
1. Language: professional Spanish.
2. Perspective: impersonal third person. Never use the candidate's name or first person.
3. Length: 4 short, focused paragraphs (180-220 words total).
4. Format: plain text only. No markdown, no bullet points, no placeholders.

Structure:
- First paragraph: profession and key experience, highlighting specialties and areas of expertise.
- Second paragraph: academic training, certifications and technical knowledge.
- Third paragraph: capabilities, languages and soft skills.
- Fourth paragraph: recognition, achievements and professional commitment.

Use impactful phrases and persuasive language, avoid redundancies and cliches, and integrate all relevant information coherently. If any data is unavailable or "Not specified", integrate it subtly or omit it when it adds no value. Output ONLY the profile text.`,
	},

	domain.PromptTechnicalTestGeneration: {
		Name:        domain.PromptTechnicalTestGeneration,
		Description: "Generate professional competency test for job candidate based on profile",
		Variables:   []string{"profession", "technologies", "experience", "education"},
		Template: `You are a senior talent assessment specialist with 15+ years of experience designing professional competency evaluations across all industries and disciplines.

Candidate profile:
- Target position: {profession}
- Key skills/tools: {technologies}
- Experience background: {experience}
- Educational foundation: {education}

Design a professional-grade competency evaluation that accurately measures the candidate's expertise for this specific role. The test must differentiate skill levels while remaining fair and completable in 90 minutes, and must reflect real-world scenarios the candidate would encounter in the position.

Adapt the test format to the profession: coding exercises and system design for technology roles, case studies and regulatory knowledge for finance or legal roles, management scenarios and decision-making for administrative roles, and practical domain problems for any other discipline.

Produce: a short introduction, 5 sections of increasing difficulty with clear instructions and point values, and an answer rubric for the evaluator. Write everything in Spanish, in plain text without markdown.`,
	},
}
