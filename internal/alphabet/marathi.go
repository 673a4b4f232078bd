package alphabet

// marathiLetters: алфавит маратхи (12 гласных, 36 согласных).
// Источник транслитерации: https://www.easyhindityping.com/marathi-alphabet
var marathiLetters = []Letter{
	{Script: "अ", Latin: "a", Difficulty: 1, Kind: KindVowel},
	{Script: "आ", Latin: "ā", Difficulty: 2, Kind: KindVowel},
	{Script: "इ", Latin: "i", Difficulty: 1, Kind: KindVowel},
	{Script: "ई", Latin: "ī", Difficulty: 2, Kind: KindVowel},
	{Script: "उ", Latin: "u", Difficulty: 1, Kind: KindVowel},
	{Script: "ऊ", Latin: "ū", Difficulty: 2, Kind: KindVowel},
	{Script: "ए", Latin: "e", Difficulty: 1, Kind: KindVowel},
	{Script: "ऐ", Latin: "ai", Difficulty: 2, Kind: KindVowel},
	{Script: "ओ", Latin: "o", Difficulty: 1, Kind: KindVowel},
	{Script: "औ", Latin: "au", Difficulty: 3, Kind: KindVowel},
	{Script: "अं", Latin: "aṃ", Difficulty: 3, Kind: KindVowel},
	{Script: "अः", Latin: "aha", Difficulty: 3, Kind: KindVowel},
	{Script: "क", Latin: "ka", Difficulty: 1, Kind: KindConsonant},
	{Script: "ख", Latin: "kha", Difficulty: 2, Kind: KindConsonant},
	{Script: "ग", Latin: "ga", Difficulty: 1, Kind: KindConsonant},
	{Script: "घ", Latin: "gha", Difficulty: 2, Kind: KindConsonant},
	{Script: "ङ", Latin: "ṅa", Difficulty: 3, Kind: KindConsonant},
	{Script: "च", Latin: "ca", Difficulty: 1, Kind: KindConsonant},
	{Script: "छ", Latin: "cha", Difficulty: 2, Kind: KindConsonant},
	{Script: "ज", Latin: "ja", Difficulty: 1, Kind: KindConsonant},
	{Script: "झ", Latin: "jha", Difficulty: 3, Kind: KindConsonant},
	{Script: "ञ", Latin: "ña", Difficulty: 3, Kind: KindConsonant},
	{Script: "ट", Latin: "ṭa", Difficulty: 2, Kind: KindConsonant},
	{Script: "ठ", Latin: "ṭha", Difficulty: 3, Kind: KindConsonant},
	{Script: "ड", Latin: "ḍa", Difficulty: 2, Kind: KindConsonant},
	{Script: "ढ", Latin: "ḍha", Difficulty: 3, Kind: KindConsonant},
	{Script: "ण", Latin: "ṇa", Difficulty: 3, Kind: KindConsonant},
	{Script: "त", Latin: "ta", Difficulty: 1, Kind: KindConsonant},
	{Script: "थ", Latin: "tha", Difficulty: 2, Kind: KindConsonant},
	{Script: "द", Latin: "da", Difficulty: 1, Kind: KindConsonant},
	{Script: "ध", Latin: "dha", Difficulty: 2, Kind: KindConsonant},
	{Script: "न", Latin: "na", Difficulty: 1, Kind: KindConsonant},
	{Script: "प", Latin: "pa", Difficulty: 1, Kind: KindConsonant},
	{Script: "फ", Latin: "pha", Difficulty: 2, Kind: KindConsonant},
	{Script: "ब", Latin: "ba", Difficulty: 2, Kind: KindConsonant},
	{Script: "भ", Latin: "bha", Difficulty: 2, Kind: KindConsonant},
	{Script: "म", Latin: "ma", Difficulty: 1, Kind: KindConsonant},
	{Script: "य", Latin: "ya", Difficulty: 1, Kind: KindConsonant},
	{Script: "र", Latin: "ra", Difficulty: 1, Kind: KindConsonant},
	{Script: "ल", Latin: "la", Difficulty: 1, Kind: KindConsonant},
	{Script: "व", Latin: "va", Difficulty: 1, Kind: KindConsonant},
	{Script: "श", Latin: "śa", Difficulty: 2, Kind: KindConsonant},
	{Script: "ष", Latin: "ṣa", Difficulty: 2, Kind: KindConsonant},
	{Script: "स", Latin: "sa", Difficulty: 1, Kind: KindConsonant},
	{Script: "ह", Latin: "ha", Difficulty: 1, Kind: KindConsonant},
	{Script: "ळ", Latin: "ḷa", Difficulty: 2, Kind: KindConsonant},
	{Script: "क्ष", Latin: "kṣa", Difficulty: 3, Kind: KindConsonant},
	{Script: "ज्ञ", Latin: "jña", Difficulty: 3, Kind: KindConsonant},
}

// Marathi возвращает каталог алфавита маратхи.
// Данные статические и проверены тестами, поэтому ошибка здесь означает ошибку в коде.
func Marathi() *Catalog {
	c, err := NewCatalog(marathiLetters)
	if err != nil {
		panic("alphabet: invalid built-in marathi catalog: " + err.Error())
	}
	return c
}
