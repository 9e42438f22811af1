package tokenize

import "strings"

// Stopword lists, one comma-separated block per language. Both lists are
// active by default: a page in either language routinely carries
// navigation text in the other.
//
// Membership is an exact word match. The engine this replaces tested
// substring containment against the concatenated list, which silently ate
// short tokens; exact matching is the intended semantics.
var stopwordLists = map[string]string{
	"de": germanStopwords,
	"en": englishStopwords,
}

// StopwordSet is a set of words excluded from the index.
type StopwordSet struct {
	words map[string]struct{}
}

// NewStopwordSet builds a set from the lists for the given language
// codes. Unknown codes contribute nothing. No codes means every known
// list.
func NewStopwordSet(langs ...string) *StopwordSet {
	if len(langs) == 0 {
		langs = Languages()
	}
	s := &StopwordSet{words: make(map[string]struct{})}
	for _, lang := range langs {
		raw, ok := stopwordLists[lang]
		if !ok {
			continue
		}
		for _, word := range strings.Split(raw, ",") {
			word = strings.TrimSpace(word)
			if word != "" {
				s.words[word] = struct{}{}
			}
		}
	}
	return s
}

// Languages returns the known stopword language codes.
func Languages() []string {
	return []string{"de", "en"}
}

// Contains reports whether word is a stopword. Nil-safe.
func (s *StopwordSet) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s *StopwordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

const germanStopwords = `ab, aber, alle, allem, allen, aller, allerdings, als, also, am, an, ander, andere, anderem, anderen, anderer, anderes, anderm, andern, anderr, anders, angesichts, auch, auf, aus, ausser, ausserdem, begann, bei, beide, beiden, beides, beim, bekommen, bereits, bescheid, bestehen, besteht, bevor, bin, bis, bislang, bist, bitte, bleib, bleibt, bloss, brauchen, braucht, da, dabei, dadurch, dafuer, dafür, dagegen, daher, damit, danach, dann, daran, darf, darin, darueber, darum, darunter, darüber, das, dasselbe, davon, dazu, daß, dei, dein, deine, deinem, deinen, deiner, deines, dem, demselben, den, denen, denkt, denn, denselben, der, derer, derselbe, derselben, des, deshalb, desselben, dessen, deswegen, dich, die, dies, diese, dieselbe, dieselben, diesem, diesen, dieser, dieses, dir, doch, dort, dran, drin, du, duerfen, durch, durfte, durften, ebenfalls, ebenso, eher, ein, eine, einem, einen, einer, eines, einig, einige, einigem, einigen, einiger, einiges, einmal, einzig, entweder, er, erhalten, erst, erste, ersten, es, etwa, etwas, euch, euer, eure, eurem, euren, eurer, eures, falls, fast, ferner, folgender, folglich, fuer, fuers, für, gab, ganz, geben, gebracht, gegen, gehabt, gehoert, geht, gehört, gekonnt, gemaess, genau, genutzt, gerade, geschadet, getan, gewesen, gewollt, geworden, gibt, gilt, grade, hab, habe, haben, haette, haetten, hal, hallo, hast, hat, hatte, hatten, hattest, hattet, heraus, herein, hier, hin, hinein, hinter, holt, home, hätte, ich, ihm, ihn, ihnen, ihr, ihre, ihrem, ihren, ihrer, ihres, im, immer, in, indem, infolge, inkl, innen, innerhalb, ins, insbesondere, inzwischen, irgend, irgendwas, irgendwen, irgendwer, irgendwie, irgendwo, ist, ja, jede, jedem, jeden, jeder, jederzeit, jedes, jedoch, jemand, jene, jenem, jenen, jener, jenes, jetzt, kam, kann, kannst, kein, keine, keinem, keinen, keiner, keines, koennen, koennte, koennten, kommt, konnte, konnten, kuenftig, können, könnt, könnte, las, leer, lich, liegt, lässt, machen, macht, machte, machten, mal, man, manche, manchem, manchen, mancher, manches, mehr, mein, meine, meinem, meinen, meiner, meines, meist, meiste, meisten, mich, mir, mit, moechte, moechten, muessen, muessten, musste, mussten, muß, mußt, möchte, möchten, müssen, müssten, müßt, nach, nachdem, nacher, naemlich, nahezu, neben, nein, nem, nen, nicht, nichts, noch, nuetzt, nun, nur, nutzt, nämlich, nützt, ob, obgleich, obwohl, oder, oft, ohne, per, pro, rein, rund, scho, schon, sehr, seid, sein, seine, seinem, seinen, seiner, seines, seit, seitdem, seither, selber, selbst, sich, sicherlich, sie, siehe, sieht, sind, sitzt, so, sobald, solange, solch, solche, solchem, solchen, solcher, solches, soll, sollen, sollst, sollt, sollte, sollten, somit, sondern, sonst, soweit, sowie, spaeter, stellt, stets, such, tragen, treten, tun, ueber, um, ums, und, uns, unse, unsem, unsen, unser, unsere, unserem, unseren, unses, unter, unterliegt, usw, viel, viele, vielleicht, vollstaendig, vollständig, vom, von, vor, vorbei, vorher, vorueber, vorüber, waehrend, waere, waeren, wann, war, waren, warst, warum, was, weg, wegen, weil, weiter, weitere, weiterem, weiteren, weiterer, weiteres, weiterhin, welche, welchem, welchen, welcher, welches, wem, wen, wenigstens, wenn, wenngleich, wer, werde, werden, werdet, weshalb, wessen, wie, wieder, wies, wieso, will, wir, wird, wirst, wo, wodurch, woher, wohin, wollen, wollte, wollten, woran, worauf, worin, wozu, wuenschen, wuerde, wuerden, wurde, wurden, während, wär, wäre, wären, wünschen, würde, würden, zig, zu, zufolge, zum, zur, zusammen, zwar, zwischen, über`

const englishStopwords = `a, able, about, above, according, accordingly, across, actually, after, afterwards, again, against, albeit, all, allow, allows, almost, alone, along, already, also, although, always, am, among, amongst, amoungst, amount, an, and, another, any, anybody, anyhow, anyone, anything, anyway, anyways, anywhere, apart, appear, appreciate, appropriate, are, around, as, aside, ask, asking, associated, at, available, away, awfully, b, back, be, became, because, become, becomes, becoming, been, before, beforehand, behind, being, believe, below, beside, besides, best, better, between, beyond, bill, both, bottom, brief, but, by, c, call, came, can, cannot, cant, cause, causes, certain, certainly, changes, clearly, co, com, come, comes, comprises, computer, con, concerning, consequently, consider, considering, contain, containing, contains, corresponding, could, couldn't, couldnt, course, cry, currently, d, de, definitely, describe, described, desired, despite, detail, did, different, do, does, doing, done, down, downwards, due, during, e, each, edu, eg, eight, either, eleven, else, elsewhere, empty, enough, entirely, especially, et, etc, even, ever, every, everybody, everyone, everything, everywhere, ex, exactly, example, except, f, far, few, fifteen, fifth, fify, fill, find, fire, first, five, followed, following, follows, for, former, formerly, forth, forty, found, four, from, front, full, further, furthermore, g, generally, get, gets, getting, give, given, gives, go, goes, going, gone, got, gotten, greetings, h, had, happens, hardly, has, hasnt, have, having, he, he's, hello, help, hence, her, here, hereafter, hereby, herein, hereupon, hers, herself, herse”, hi, him, himself, himse”, his, hither, hopefully, how, howbeit, however, hundred, i, ie, if, ignored, immediate, in, inasmuch, inc, incl, indeed, indicate, indicated, indicates, inner, insofar, instead, interest, into, inward, is, it, its, itse, itself, j, just, k, keep, keeps, kept, know, known, knows, l, last, lately, later, latter, latterly, least, less, lest, let, let's, like, liked, likely, little, look, looking, looks, ltd, m, made, mainly, many, may, maybe, me, mean, means, meanwhile, merely, might, mill, mine, more, moreover, most, mostly, move, much, must, my, myself, myse”, n, name, namely, nd, near, nearly, necessary, need, needs, neither, never, nevertheless, new, next, nine, no, nobody, non, none, noone, nor, normally, not, nothing, novel, now, nowhere, o, obviously, of, off, often, oh, ok, okay, old, on, once, one, ones, only, onto, or, other, others, otherwise, ought, our, ours, ourselves, out, outside, over, overall, own, p, part, particular, particularly, per, perhaps, placed, please, plus, possible, preferably, preferred, present, presumably, probably, provides, put, q, que, quite, qv, r, rather, rd, re, really, reasonably, regarding, regardless, regards, relatively, respectively, right, s, said, same, saw, say, saying, says, second, secondly, see, seeing, seem, seemed, seeming, seems, seen, self, selves, sensible, sent, serious, seriously, seven, several, shall, she, should, show, side, since, sincere, six, sixty, so, some, somebody, somehow, someone, something, sometime, sometimes, somewhat, somewhere, soon, sorry, specified, specify, specifying, still, sub, such, suitable, sup, sure, system, t, take, taken, tell, ten, tends, th, than, thank, thanks, thanx, that, thats, the, their, theirs, them, themselves, then, thence, there, thereafter, thereby, therefor, therefore, therein, thereof, theres, thereto, thereupon, these, they, thick, thin, think, third, this, thorough, thoroughly, those, though, three, through, throughout, thru, thus, to, together, too, took, top, toward, towards, tried, tries, truly, try, trying, twelve, twenty, twice, two, u, un, under, unfortunately, unless, unlikely, until, unto, up, upon, us, use, used, useful, uses, using, usually, uucp, v, value, various, very, via, viz, vs, w, want, wants, was, way, we, welcome, well, went, were, what, whatever, whatsoever, when, whence, whenever, whensoever, where, whereafter, whereas, whereat, whereby, wherefrom, wherein, whereinto, whereof, whereon, whereto, whereunto, whereupon, wherever, wherewith, whether, which, whichever, whichsoever, while, whilst, whither, who, whoever, whole, whom, whomever, whomsoever, whose, whosoever, why, will, willing, wish, with, within, without, wonder, would, x, y, yes, yet, you, your, yours, yourself, yourselves, zero`
