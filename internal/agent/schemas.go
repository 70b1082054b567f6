package agent

import "google.golang.org/genai"

// Response schemas constrain the oracle's structured-JSON mode to the
// exact shapes the agents decode. Field names match the JSON tags in
// the types package.

var stringArray = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeString},
}

var jobAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"keywords": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"hard_skills":    stringArray,
				"soft_skills":    stringArray,
				"industry_terms": stringArray,
				"tech_stack":     stringArray,
			},
			Required: []string{"hard_skills", "soft_skills", "industry_terms", "tech_stack"},
		},
		"responsibilities": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"description":      {Type: genai.TypeString},
					"keywords":         stringArray,
					"semantic_matches": stringArray,
				},
				Required: []string{"description", "keywords", "semantic_matches"},
			},
		},
		"qualifications": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"required": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"education":        stringArray,
						"certifications":   stringArray,
						"experience_years": {Type: genai.TypeString},
						"must_have_skills": stringArray,
					},
					Required: []string{"education", "certifications", "experience_years", "must_have_skills"},
				},
				"preferred": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"education":           stringArray,
						"certifications":      stringArray,
						"nice_to_have_skills": stringArray,
					},
					Required: []string{"education", "certifications", "nice_to_have_skills"},
				},
			},
			Required: []string{"required", "preferred"},
		},
		"seniority_level": {Type: genai.TypeString},
		"semantic_context": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"role_focus":    {Type: genai.TypeString},
				"key_outcomes":  stringArray,
				"related_roles": stringArray,
			},
			Required: []string{"role_focus", "key_outcomes", "related_roles"},
		},
	},
	Required: []string{"keywords", "responsibilities", "qualifications", "seniority_level", "semantic_context"},
}

var parsedResumeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"personal_info": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":     {Type: genai.TypeString},
				"email":    {Type: genai.TypeString},
				"phone":    {Type: genai.TypeString},
				"location": {Type: genai.TypeString},
				"linkedin": {Type: genai.TypeString},
				"website":  {Type: genai.TypeString},
				"summary":  {Type: genai.TypeString},
			},
			Required: []string{"name", "email", "phone", "location", "linkedin", "website", "summary"},
		},
		"education": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"degree":         {Type: genai.TypeString},
					"field_of_study": {Type: genai.TypeString},
					"institution":    {Type: genai.TypeString},
					"location":       {Type: genai.TypeString},
					"start_date":     {Type: genai.TypeString},
					"end_date":       {Type: genai.TypeString},
					"gpa":            {Type: genai.TypeString},
					"achievements":   {Type: genai.TypeString},
				},
				Required: []string{"degree", "institution", "start_date", "end_date"},
			},
		},
		"experience": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":        {Type: genai.TypeString},
					"company":      {Type: genai.TypeString},
					"location":     {Type: genai.TypeString},
					"start_date":   {Type: genai.TypeString},
					"end_date":     {Type: genai.TypeString},
					"current":      {Type: genai.TypeBoolean},
					"description":  {Type: genai.TypeString},
					"achievements": {Type: genai.TypeString},
				},
				Required: []string{"title", "company", "start_date", "end_date", "current"},
			},
		},
		"skills": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString},
					"category":    {Type: genai.TypeString},
					"proficiency": {Type: genai.TypeString},
				},
				Required: []string{"name", "category"},
			},
		},
		"projects": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":         {Type: genai.TypeString},
					"description":  {Type: genai.TypeString},
					"technologies": {Type: genai.TypeString},
					"url":          {Type: genai.TypeString},
					"achievements": {Type: genai.TypeString},
				},
				Required: []string{"name"},
			},
		},
	},
	Required: []string{"personal_info", "education", "experience", "skills", "projects"},
}

var qualityIssueSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"text":       {Type: genai.TypeString},
		"bullet":     {Type: genai.TypeString},
		"phrase":     {Type: genai.TypeString},
		"count":      {Type: genai.TypeInteger},
		"issue":      {Type: genai.TypeString},
		"suggestion": {Type: genai.TypeString},
		"severity":   {Type: genai.TypeString},
	},
	Required: []string{"suggestion", "severity"},
}

var qualityReviewSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"spelling_grammar":   {Type: genai.TypeArray, Items: qualityIssueSchema},
		"missing_metrics":    {Type: genai.TypeArray, Items: qualityIssueSchema},
		"repetitive_phrases": {Type: genai.TypeArray, Items: qualityIssueSchema},
		"cliches":            {Type: genai.TypeArray, Items: qualityIssueSchema},
		"formatting_issues":  {Type: genai.TypeArray, Items: qualityIssueSchema},
		"quality_score": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"overall":    {Type: genai.TypeInteger},
				"spelling":   {Type: genai.TypeInteger},
				"metrics":    {Type: genai.TypeInteger},
				"formatting": {Type: genai.TypeInteger},
				"content":    {Type: genai.TypeInteger},
			},
			Required: []string{"overall", "spelling", "metrics", "formatting", "content"},
		},
		"summary": {Type: genai.TypeString},
	},
	Required: []string{"spelling_grammar", "missing_metrics", "repetitive_phrases", "cliches", "formatting_issues", "quality_score", "summary"},
}

var contentOptimizationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"optimized_summary": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"original":            {Type: genai.TypeString},
				"optimized":           {Type: genai.TypeString},
				"explanation":         {Type: genai.TypeString},
				"keywords_integrated": stringArray,
			},
			Required: []string{"original", "optimized", "explanation", "keywords_integrated"},
		},
		"optimized_bullets": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"original":            {Type: genai.TypeString},
					"optimized":           {Type: genai.TypeString},
					"explanation":         {Type: genai.TypeString},
					"keywords_integrated": stringArray,
					"impact_score":        {Type: genai.TypeInteger},
				},
				Required: []string{"original", "optimized", "explanation", "keywords_integrated", "impact_score"},
			},
		},
		"optimized_skills": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"prioritized_skills":  stringArray,
				"skills_to_add":       stringArray,
				"skills_to_emphasize": stringArray,
				"explanation":         {Type: genai.TypeString},
			},
			Required: []string{"prioritized_skills", "skills_to_add", "skills_to_emphasize", "explanation"},
		},
		"overall_suggestions": stringArray,
	},
	Required: []string{"optimized_summary", "optimized_bullets", "optimized_skills", "overall_suggestions"},
}

var matchScoreSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"overall_match_score": {Type: genai.TypeInteger},
		"score_breakdown": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"keyword_match": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"score":               {Type: genai.TypeInteger},
						"matched_keywords":    stringArray,
						"missing_keywords":    stringArray,
						"coverage_percentage": {Type: genai.TypeInteger},
					},
					Required: []string{"score", "matched_keywords", "missing_keywords", "coverage_percentage"},
				},
				"semantic_match": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"score": {Type: genai.TypeInteger},
						"strong_alignments": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"resume_text":     {Type: genai.TypeString},
									"job_requirement": {Type: genai.TypeString},
								},
								Required: []string{"resume_text", "job_requirement"},
							},
						},
						"explanation": {Type: genai.TypeString},
					},
					Required: []string{"score", "strong_alignments", "explanation"},
				},
				"responsibilities_coverage": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"score": {Type: genai.TypeInteger},
						"covered_responsibilities": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"responsibility":  {Type: genai.TypeString},
									"resume_evidence": {Type: genai.TypeString},
								},
								Required: []string{"responsibility", "resume_evidence"},
							},
						},
						"uncovered_responsibilities": stringArray,
					},
					Required: []string{"score", "covered_responsibilities", "uncovered_responsibilities"},
				},
				"qualifications_fit": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"score":               {Type: genai.TypeInteger},
						"education_match":     {Type: genai.TypeBoolean},
						"experience_match":    {Type: genai.TypeBoolean},
						"certification_match": {Type: genai.TypeBoolean},
						"gaps":                stringArray,
					},
					Required: []string{"score", "education_match", "experience_match", "certification_match", "gaps"},
				},
				"ats_compliance": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"score":           {Type: genai.TypeInteger},
						"issues":          stringArray,
						"recommendations": stringArray,
					},
					Required: []string{"score", "issues", "recommendations"},
				},
			},
			Required: []string{"keyword_match", "semantic_match", "responsibilities_coverage", "qualifications_fit", "ats_compliance"},
		},
		"improvement_priority": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"area":       {Type: genai.TypeString},
					"impact":     {Type: genai.TypeString},
					"suggestion": {Type: genai.TypeString},
				},
				Required: []string{"area", "impact", "suggestion"},
			},
		},
		"summary": {Type: genai.TypeString},
	},
	Required: []string{"overall_match_score", "score_breakdown", "improvement_priority", "summary"},
}

var roleCalibrationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"tone_assessment": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"current_level":   {Type: genai.TypeString},
				"target_level":    {Type: genai.TypeString},
				"alignment_score": {Type: genai.TypeInteger},
				"issues":          stringArray,
			},
			Required: []string{"current_level", "target_level", "alignment_score", "issues"},
		},
		"vocabulary_adjustments": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"section":           {Type: genai.TypeString},
					"original_phrase":   {Type: genai.TypeString},
					"calibrated_phrase": {Type: genai.TypeString},
					"reason":            {Type: genai.TypeString},
					"example":           {Type: genai.TypeString},
				},
				Required: []string{"section", "original_phrase", "calibrated_phrase", "reason", "example"},
			},
		},
		"leadership_calibration": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"current_leadership_cues": stringArray,
				"suggested_additions":     stringArray,
				"tone_shift":              {Type: genai.TypeString},
			},
			Required: []string{"current_leadership_cues", "suggested_additions", "tone_shift"},
		},
		"formality_adjustments": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"current_formality": {Type: genai.TypeString},
				"target_formality":  {Type: genai.TypeString},
				"suggestions":       stringArray,
			},
			Required: []string{"current_formality", "target_formality", "suggestions"},
		},
		"calibrated_examples": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"original":    {Type: genai.TypeString},
					"calibrated":  {Type: genai.TypeString},
					"key_changes": stringArray,
				},
				Required: []string{"original", "calibrated", "key_changes"},
			},
		},
	},
	Required: []string{"tone_assessment", "vocabulary_adjustments", "leadership_calibration", "formality_adjustments", "calibrated_examples"},
}
