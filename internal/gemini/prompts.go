package gemini

// AnalysisInstruction is sent with every product image. The single %s verb is
// the name of the language the answer must be written in.
const AnalysisInstruction = `Analyze the ingredients on this food product image for Halal compliance. Check for:
1. Pork or derivatives (including lard, gelatin, enzymes)
2. Alcohol-based ingredients
3. Other types of meats

Answer in %s.

Reply format:
- Use HTML tags for formatting (e.g., <b> for bold instead of **).
- Product type: [with one or two words, wrapped in <b> tags]
- Issues: [List main concerns if any, use <b> tags for key points]
- Advice: [Brief recommendation, use <b> tags for emphasis]

Example:
<b>Product type:</b> Granola
<b>Issues:</b>
1. <b>Pork:</b> The product contains pork, which is a major concern for Halal compliance.

<b>Advice:</b> This product is not suitable for Halal consumption due to the presence of pork. Avoid this product or look for Halal-certified granola products.
`
