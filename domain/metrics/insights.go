package metrics

// InsightText returns the personalized insight body for a category, as
// markdown. The UI renders it to HTML; the engine never emits markup.
func InsightText(category Category) string {
	switch category {
	case CategoryExcellent:
		return `**Outstanding Performance!** Your improvement demonstrates excellent utilization of the assistive tool. You've shown significant growth in programming skills.

**Key Achievements:**

- Strong understanding of programming concepts
- Effective use of AI assistance
- Significant skill enhancement

**Next Steps:** Continue leveraging the tool for complex problems while maintaining your analytical skills.`
	case CategoryStrong:
		return `**Great Progress!** You've made strong improvements in your programming skills with the tool's assistance.

**Key Achievements:**

- Notable improvement in problem-solving
- Good integration of AI tools

**Next Steps:** Focus on challenging yourself with more complex problems to reach excellent level.`
	case CategoryModerate, CategoryNeutral:
		return `**Room for Growth.** You've shown some improvement, but there's potential for better tool utilization.

**Recommendations:**

- Ask more detailed questions
- Verify and understand all suggested solutions
- Practice implementing solutions independently

**Next Steps:** Increase engagement with AI tools while focusing on fundamental understanding.`
	case CategoryInsufficient:
		return `**Insufficient Data.** Your pre-test or post-test score is missing, so no personalized insight can be computed. Please contact your teacher.`
	default:
		return `**Needs Attention.** Your scores suggest difficulty in leveraging the tool effectively.

**Action Required:**

- Review fundamental programming concepts
- Learn how to ask better questions
- Seek additional support from teachers
- Practice with simpler problems first

**Next Steps:** Consider additional tutoring and structured practice sessions.`
	}
}
